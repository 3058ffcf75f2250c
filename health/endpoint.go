package health

import (
	"context"
	"fmt"
	"time"
)

// Pinger issues a lightweight request against a remote API.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EndpointCheckerConfig configures an EndpointChecker.
type EndpointCheckerConfig struct {
	// Name of the checker. Default: "endpoint"
	Name string

	// SlowThreshold marks a successful ping as degraded when exceeded.
	// Default: 2 seconds
	SlowThreshold time.Duration
}

// EndpointChecker reports whether the upstream API answers.
type EndpointChecker struct {
	pinger Pinger
	config EndpointCheckerConfig
}

// NewEndpointChecker creates a checker that pings p.
func NewEndpointChecker(p Pinger, config EndpointCheckerConfig) *EndpointChecker {
	if config.Name == "" {
		config.Name = "endpoint"
	}
	if config.SlowThreshold <= 0 {
		config.SlowThreshold = 2 * time.Second
	}
	return &EndpointChecker{pinger: p, config: config}
}

// Name returns the name of this checker.
func (e *EndpointChecker) Name() string {
	return e.config.Name
}

// Check pings the endpoint once.
func (e *EndpointChecker) Check(ctx context.Context) Result {
	start := time.Now()
	err := e.pinger.Ping(ctx)
	latency := time.Since(start)

	details := map[string]any{
		"latency_ms": latency.Milliseconds(),
	}

	if err != nil {
		return Unhealthy("endpoint unreachable", fmt.Errorf("%w: %w", ErrCheckFailed, err)).
			WithDetails(details).
			WithDuration(latency)
	}
	if latency > e.config.SlowThreshold {
		return Degraded(fmt.Sprintf("endpoint slow: %s", latency.Round(time.Millisecond))).
			WithDetails(details).
			WithDuration(latency)
	}
	return Healthy("endpoint reachable").WithDetails(details).WithDuration(latency)
}
