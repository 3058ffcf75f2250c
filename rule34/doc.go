// Package rule34 is a client for the rule34 post API.
//
// A Client issues GET requests against a single JSON endpoint and decodes
// the response into post.Post records. Lookups by identifier, change-token
// and tag-string are cached in memory for the lifetime of the client;
// GetLatest always goes to the network.
//
// Every operation runs through an observe.Middleware (span, metrics and a
// log line per call) and a resilience.Executor (per-request timeout and an
// optional circuit breaker). Failures are returned as errors: a response
// that cannot be read as posts matches ErrPostNotFound or ErrPostsNotFound,
// a non-2xx reply is a *StatusError, and a non-positive limit matches
// ErrInvalidArgument before any request is made.
package rule34
