package rule34

import (
	"net/http"

	"github.com/jonwraymond/rule34/cache"
	"github.com/jonwraymond/rule34/observe"
	"github.com/jonwraymond/rule34/resilience"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Its transport is wrapped for
// tracing; the value passed in is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCache makes the client use an existing cache, for example one shared
// between clients pointed at the same endpoint.
func WithCache(cc *cache.Cache) Option {
	return func(c *Client) {
		c.cache = cc
	}
}

// WithMiddleware sets the observability middleware wrapped around calls.
func WithMiddleware(mw *observe.Middleware) Option {
	return func(c *Client) {
		c.mw = mw
	}
}

// WithLogger sets the logger for client warnings.
// Default: the middleware's logger.
func WithLogger(l observe.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithExecutor sets the executor every request runs through.
// Default: a 30 second timeout and no circuit breaker.
func WithExecutor(e *resilience.Executor) Option {
	return func(c *Client) {
		c.exec = e
	}
}

// WithMaxResponseBytes bounds the size of a response body.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}
