package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	applogger "DivYield/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// sharedComputeTimeout bounds a compute shared by concurrent callers.
const sharedComputeTimeout = time.Minute

// Memoizer is a read-through layer over a Service. Concurrent misses on the
// same key share a single call to the compute function. Errors are not stored.
type Memoizer struct {
	store  Service
	group  singleflight.Group
	logger *applogger.Logger
}

// NewMemoizer wraps store. The logger may be nil.
func NewMemoizer(store Service, l *applogger.Logger) *Memoizer {
	return &Memoizer{store: store, logger: l}
}

// GetOrCompute returns the cached value for key or computes, stores and returns
// it. hit reports whether the value came from the cache. A failing cache
// backend degrades to calling fn directly.
func GetOrCompute[T any](ctx context.Context, m *Memoizer, key string, ttl time.Duration, fn func(context.Context) (T, error)) (value T, hit bool, err error) {
	b, err := m.store.Get(ctx, key)
	switch {
	case err == nil:
		if uerr := json.Unmarshal(b, &value); uerr == nil {
			return value, true, nil
		}
		m.warn("cache entry undecodable", key, nil)
	case !errors.Is(err, ErrCacheMiss):
		m.warn("cache get failed", key, err)
	}

	// the shared compute outlives any single caller so one caller leaving does
	// not fail the others waiting on it
	ch := m.group.DoChan(key, func() (interface{}, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedComputeTimeout)
		defer cancel()
		v, err := fn(sctx)
		if err != nil {
			return nil, err
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		if serr := m.store.Set(sctx, key, enc, ttl); serr != nil {
			m.warn("cache set failed", key, serr)
		}
		return enc, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		var zero T
		return zero, false, res.Err
	}

	// each caller decodes its own copy; shared results are never aliased
	var out T
	if err := json.Unmarshal(res.Val.([]byte), &out); err != nil {
		var zero T
		return zero, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, false, nil
}

func (m *Memoizer) warn(msg, key string, err error) {
	if m.logger == nil {
		return
	}
	if err != nil {
		m.logger.Warn(msg, applogger.String("key", key), applogger.Error(err))
		return
	}
	m.logger.Warn(msg, applogger.String("key", key))
}
