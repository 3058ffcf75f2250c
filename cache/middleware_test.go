package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockLoader tracks calls and returns configured results
type mockLoader struct {
	calls  atomic.Int32
	result []string
	err    error
}

func (m *mockLoader) load(_ context.Context) ([]string, error) {
	m.calls.Add(1)
	return m.result, m.err
}

func TestGetOrLoad_CacheHit(t *testing.T) {
	s := NewStore[string, []string]("test")
	loader := &mockLoader{result: []string{"a", "b"}}
	ctx := context.Background()

	// First call - should load
	got, hit, err := s.GetOrLoad(ctx, "cat -dog", loader.load)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if hit {
		t.Error("first call should be a miss")
	}
	if loader.calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", loader.calls.Load())
	}
	if len(got) != 2 {
		t.Errorf("unexpected result: %v", got)
	}

	// Second call - should return cached, loader NOT called
	got, hit, err = s.GetOrLoad(ctx, "cat -dog", loader.load)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !hit {
		t.Error("second call should be a hit")
	}
	if loader.calls.Load() != 1 {
		t.Errorf("expected loader to NOT be called again, got %d calls", loader.calls.Load())
	}
	if len(got) != 2 {
		t.Errorf("unexpected cached result: %v", got)
	}
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	s := NewStore[string, []string]("test")
	testErr := errors.New("load failed")
	loader := &mockLoader{err: testErr}
	ctx := context.Background()

	_, _, err := s.GetOrLoad(ctx, "key", loader.load)
	if !errors.Is(err, testErr) {
		t.Fatalf("expected %v, got %v", testErr, err)
	}
	if _, ok := s.Get("key"); ok {
		t.Error("failed load should not be cached")
	}

	// Retry should call loader again
	_, _, _ = s.GetOrLoad(ctx, "key", loader.load)
	if loader.calls.Load() != 2 {
		t.Errorf("expected 2 calls after error, got %d", loader.calls.Load())
	}
}

func TestGetOrLoad_EmptyResultCached(t *testing.T) {
	s := NewStore[string, []string]("test")
	loader := &mockLoader{result: []string{}}
	ctx := context.Background()

	_, _, _ = s.GetOrLoad(ctx, "nothing", loader.load)
	_, hit, err := s.GetOrLoad(ctx, "nothing", loader.load)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Error("empty result should be served from cache")
	}
	if loader.calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", loader.calls.Load())
	}
}

func TestGetOrLoad_ConcurrentMissesShareLoad(t *testing.T) {
	s := NewStore[int64, []string]("test")
	release := make(chan struct{})
	var calls atomic.Int32

	load := func(_ context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"x"}, nil
	}

	const callers = 10
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, _, err := s.GetOrLoad(context.Background(), 42, load); err != nil {
				t.Errorf("GetOrLoad failed: %v", err)
			}
		}()
	}

	// Give the goroutines time to join the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected 1 load for concurrent misses, got %d", calls.Load())
	}
}

func TestGetOrLoad_CallerCancelDoesNotFailOthers(t *testing.T) {
	s := NewStore[string, []string]("test")
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	load := func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		close(started)
		select {
		case <-release:
			return []string{"x"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, _, err := s.GetOrLoad(ctxA, "cat", load)
		errA <- err
	}()
	<-started

	type outcome struct {
		value []string
		err   error
	}
	resB := make(chan outcome, 1)
	go func() {
		v, _, err := s.GetOrLoad(context.Background(), "cat", load)
		resB <- outcome{v, err}
	}()

	// Let the second caller join the in-flight load.
	time.Sleep(20 * time.Millisecond)
	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller error = %v, want context.Canceled", err)
	}

	close(release)
	b := <-resB
	if b.err != nil {
		t.Fatalf("live caller error = %v", b.err)
	}
	if len(b.value) != 1 {
		t.Errorf("live caller got %v", b.value)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 load, got %d", calls.Load())
	}
	if _, ok := s.Get("cat"); !ok {
		t.Error("completed load should be cached")
	}
}

func TestGetOrLoad_CancelledBeforeLoad(t *testing.T) {
	s := NewStore[string, []string]("test")
	loader := &mockLoader{result: []string{"a"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.GetOrLoad(ctx, "key", loader.load)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if loader.calls.Load() != 0 {
		t.Errorf("loader called %d times for a cancelled context", loader.calls.Load())
	}
}
