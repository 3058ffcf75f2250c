package health

import (
	"context"

	"github.com/jonwraymond/rule34/resilience"
)

// BreakerChecker reports the state of a circuit breaker.
// Open is unhealthy; half-open is degraded.
type BreakerChecker struct {
	cb *resilience.CircuitBreaker
}

// NewBreakerChecker creates a checker for cb.
func NewBreakerChecker(cb *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{cb: cb}
}

// Name returns the name of this checker.
func (b *BreakerChecker) Name() string {
	return "circuit:" + b.cb.Name()
}

// Check reads the breaker's current state.
func (b *BreakerChecker) Check(ctx context.Context) Result {
	stats := b.cb.Stats()
	details := map[string]any{
		"state":    stats.State.String(),
		"failures": stats.Failures,
		"rejected": stats.Rejected,
	}

	switch stats.State {
	case resilience.StateOpen:
		return Unhealthy("circuit open", resilience.ErrCircuitOpen).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit probing").WithDetails(details)
	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}
