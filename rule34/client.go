package rule34

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jonwraymond/rule34/cache"
	"github.com/jonwraymond/rule34/config"
	"github.com/jonwraymond/rule34/health"
	"github.com/jonwraymond/rule34/observe"
	"github.com/jonwraymond/rule34/resilience"
)

const (
	// DefaultBaseURL is the public post index endpoint.
	DefaultBaseURL = "https://api.rule34.xxx/index.php?page=dapi&s=post&q=index"

	// DefaultLimit is the largest page the API serves.
	DefaultLimit = 1000

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "rule34-go"

	// DefaultMaxResponseBytes bounds a response body (32 MiB).
	DefaultMaxResponseBytes int64 = 32 << 20
)

// Operation names used for spans, metrics and log lines.
const (
	OpSearchByID     = "search_by_id"
	OpSearchByChange = "search_by_change"
	OpSearchByTags   = "search_by_tags"
	OpGetRandom      = "get_random"
	OpGetLatest      = "get_latest"
	OpPing           = "ping"
)

// Client queries the post API and caches lookups in memory.
//
// Contract:
//   - Concurrency: safe for concurrent use. Concurrent misses on the same
//     cache key share one request.
//   - Context: every operation honors cancellation and deadlines.
//   - Errors: see the package documentation; nothing is retried.
//   - Ownership: returned posts are shared with the cache and must be
//     treated as read-only. Returned slices are the caller's.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	maxBytes   int64

	cache  *cache.Cache
	mw     *observe.Middleware
	logger observe.Logger
	exec   *resilience.Executor

	// observer is set when the client created it and must shut it down.
	observer observe.Observer
}

// NewClient creates a client for the endpoint at baseURL. An empty baseURL
// selects DefaultBaseURL. Query parameters already on baseURL are kept on
// every request.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalidArgument, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q must be an absolute http(s) URL", ErrInvalidArgument, baseURL)
	}

	c := &Client{
		baseURL:   u,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cache == nil {
		c.cache = cache.New()
	}
	if c.mw == nil {
		c.mw = observe.NopMiddleware()
	}
	if c.logger == nil {
		c.logger = c.mw.Logger()
	}
	if c.exec == nil {
		c.exec = resilience.NewExecutor(resilience.WithTimeout(resilience.DefaultTimeout))
	}
	c.httpClient = instrument(c.httpClient)

	return c, nil
}

// NewFromConfig creates a client with telemetry, timeout and circuit
// breaker built from cfg. The client owns the observer it creates; call
// Close to flush and stop exporters. opts are applied after the
// configuration and may override it.
func NewFromConfig(ctx context.Context, cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	obsCfg := cfg.Observe()
	obs, err := observe.NewObserver(ctx, obsCfg)
	if err != nil {
		return nil, fmt.Errorf("create observer: %w", err)
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, fmt.Errorf("create middleware: %w", err)
	}

	execOpts := []resilience.ExecutorOption{resilience.WithTimeout(cfg.RequestTimeout)}
	if cfg.BreakerMaxFailures > 0 {
		execOpts = append(execOpts, resilience.WithCircuitBreaker(newBreaker(cfg, obs.Logger())))
	}

	base := []Option{
		WithUserAgent(cfg.UserAgent),
		WithMaxResponseBytes(cfg.MaxResponseBytes),
		WithMiddleware(mw),
		WithExecutor(resilience.NewExecutor(execOpts...)),
	}
	c, err := NewClient(cfg.BaseURL, append(base, opts...)...)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}
	c.observer = obs
	return c, nil
}

func newBreaker(cfg config.Config, logger observe.Logger) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:         "rule34",
		MaxFailures:  cfg.BreakerMaxFailures,
		ResetTimeout: cfg.BreakerResetTimeout,
		IsFailure:    isUpstreamFailure,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				observe.Field{Key: "breaker", Value: name},
				observe.Field{Key: "from", Value: from.String()},
				observe.Field{Key: "to", Value: to.String()},
			)
		},
	})
}

// isUpstreamFailure reports whether err should count against the API.
// Client-side rejections (4xx other than 429) and caller cancellation
// do not.
func isUpstreamFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

// instrument returns a copy of hc whose transport records client spans.
func instrument(hc *http.Client) *http.Client {
	if hc == nil {
		hc = &http.Client{}
	}
	cp := *hc
	base := cp.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	cp.Transport = otelhttp.NewTransport(base)
	return &cp
}

// Cache returns the client's cache.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// Breaker returns the circuit breaker, or nil when none is configured.
func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.exec.CircuitBreaker()
}

// BaseURL returns a copy of the endpoint URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// RegisterHealth adds the client's checkers to agg: an endpoint ping, the
// cache size and, when configured, the circuit breaker.
func (c *Client) RegisterHealth(agg *health.Aggregator) {
	endpoint := health.NewEndpointChecker(c, health.EndpointCheckerConfig{Name: "rule34"})
	agg.Register(endpoint.Name(), endpoint)

	size := health.NewCacheChecker(c.cache, health.CacheCheckerConfig{})
	agg.Register(size.Name(), size)

	if cb := c.Breaker(); cb != nil {
		breaker := health.NewBreakerChecker(cb)
		agg.Register(breaker.Name(), breaker)
	}
}

// Close shuts down telemetry created by NewFromConfig. It is a no-op for
// clients built with NewClient.
func (c *Client) Close(ctx context.Context) error {
	if c.observer == nil {
		return nil
	}
	return c.observer.Shutdown(ctx)
}
