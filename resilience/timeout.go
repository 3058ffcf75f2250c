package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout wrapper.
type TimeoutConfig struct {
	// Timeout is the maximum duration of one request.
	// Default: DefaultTimeout
	Timeout time.Duration
}

// Timeout bounds the duration of an operation.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout wrapper.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Timeout{config: config}
}

// Execute runs op with a derived deadline. When that deadline passes before
// op returns, Execute returns an error matching ErrTimeout. When the parent
// context ends first (cancelled, or its own earlier deadline), its error is
// returned as-is.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	parent := ctx
	ctx, cancel := context.WithTimeout(parent, t.config.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		if errors.Is(err, context.DeadlineExceeded) && expired(parent, ctx) {
			return fmt.Errorf("%w after %s", ErrTimeout, t.config.Timeout)
		}
		return err
	case <-ctx.Done():
		if expired(parent, ctx) {
			return fmt.Errorf("%w after %s", ErrTimeout, t.config.Timeout)
		}
		if err := parent.Err(); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// expired reports whether ctx hit the derived deadline while parent was live.
func expired(parent, ctx context.Context) bool {
	return parent.Err() == nil && ctx.Err() == context.DeadlineExceeded
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// ExecuteWithTimeout runs op with a one-off timeout.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	return NewTimeout(TimeoutConfig{Timeout: timeout}).Execute(ctx, op)
}
