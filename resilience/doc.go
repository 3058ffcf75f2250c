// Package resilience bounds and guards requests to the upstream post API.
//
// Two patterns are provided and composed by Executor:
//
//   - Timeout: each request gets its own deadline (DefaultTimeout unless
//     configured). Expiry is reported as ErrTimeout.
//
//   - Circuit Breaker: after MaxFailures consecutive failures the breaker
//     opens and rejects requests with ErrCircuitOpen until ResetTimeout has
//     passed, then lets a probe through.
//
// Failed requests are never retried.
//
// # Usage
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:         "rule34",
//	    MaxFailures:  5,
//	    ResetTimeout: time.Minute,
//	})
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(cb),
//	    resilience.WithTimeout(10*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetch(ctx)
//	})
package resilience
