// Package health reports whether the post API client can serve requests.
//
// A Checker reports one component as Healthy, Degraded or Unhealthy. The
// package ships three:
//
//   - EndpointChecker pings the upstream API through a Pinger.
//   - CacheChecker watches the entry count of the client cache, which never
//     evicts.
//   - BreakerChecker exposes the state of a resilience.CircuitBreaker.
//
// # Aggregating Health Checks
//
//	agg := health.NewAggregator()
//	agg.Register("endpoint", health.NewEndpointChecker(client, health.EndpointCheckerConfig{}))
//	agg.Register("cache", health.NewCacheChecker(client.Cache(), health.CacheCheckerConfig{}))
//
//	report := agg.Report(ctx)
//
// # HTTP Endpoints
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg) // /healthz, /readyz, /health
package health
