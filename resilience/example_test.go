package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/rule34/resilience"
)

func ExampleNewCircuitBreaker() {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		MaxFailures:  3,
		ResetTimeout: time.Second,
	})

	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})

	if err == nil {
		fmt.Println("Request succeeded")
	}
	// Output:
	// Request succeeded
}

func ExampleCircuitBreaker_State() {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		MaxFailures:  2,
		ResetTimeout: time.Minute,
	})

	ctx := context.Background()
	fmt.Println("Initial state:", cb.State())

	unavailable := errors.New("503 service unavailable")
	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func(ctx context.Context) error {
			return unavailable
		})
	}
	fmt.Println("After failures:", cb.State())

	cb.Reset()
	fmt.Println("After reset:", cb.State())
	// Output:
	// Initial state: closed
	// After failures: open
	// After reset: closed
}

func ExampleNewCircuitBreaker_withStateChange() {
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:         "rule34",
		MaxFailures:  1,
		ResetTimeout: time.Minute,
		OnStateChange: func(name string, from, to resilience.State) {
			fmt.Printf("%s: %s -> %s\n", name, from, to)
		},
	})

	_ = cb.Execute(context.Background(), func(ctx context.Context) error {
		return errors.New("failure")
	})
	// Output:
	// rule34: closed -> open
}

func ExampleExecuteWithTimeout() {
	err := resilience.ExecuteWithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	fmt.Println(errors.Is(err, resilience.ErrTimeout))
	// Output:
	// true
}

func ExampleNewExecutor() {
	executor := resilience.NewExecutor(
		resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			MaxFailures: 5,
		})),
		resilience.WithTimeout(5*time.Second),
	)

	err := executor.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})
	fmt.Println("Error:", err)
	// Output:
	// Error: <nil>
}
