package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LoadFunc fetches the value for a key that missed the cache.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// loadGroup collapses concurrent loads of the same key.
type loadGroup struct {
	group singleflight.Group
}

// GetOrLoad returns the cached value for key, or calls load and caches its
// result.
//
// On hit, load is not called and hit is true. On miss, concurrent callers
// for the same key share one load call. The load runs on a context that
// keeps the starting caller's values but not its cancellation, so load
// must bound itself (the client's executor applies a timeout). Each caller
// stops waiting when its own ctx is done; the load still completes and
// fills the cache for later callers. Errors are NOT cached.
func (s *Store[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[V]) (value V, hit bool, err error) {
	if v, ok := s.Get(key); ok {
		return v, true, nil
	}
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, false, err
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.loads.group.DoChan(flightKey(key), func() (any, error) {
		// A previous flight may have stored the key between Get and DoChan.
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.Set(key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, false, res.Err
		}
		v, _ := res.Val.(V)
		return v, false, nil
	case <-ctx.Done():
		var zero V
		return zero, false, ctx.Err()
	}
}

func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
