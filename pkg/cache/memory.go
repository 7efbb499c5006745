package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"DivYield/pkg/util"
)

const defaultMemoryTTL = 24 * time.Hour

type memoryEntry struct {
	key      string
	value    []byte
	expireAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !now.Before(e.expireAt)
}

// MemoryCache is a process-local Service with LRU eviction. Values are copied
// on the way in and out so callers never share backing arrays.
type MemoryCache struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	lru     *list.List // front is most recently used
	maxSize int
	clock   util.Clock

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryCache creates an in-memory cache holding at most 1000 entries by
// default, swept every 5 minutes.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &memoryConfig{
		maxSize:         1000,
		cleanupInterval: 5 * time.Minute,
		clock:           util.SystemClock{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxSize < 1 {
		cfg.maxSize = 1
	}

	mc := &MemoryCache{
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		maxSize: cfg.maxSize,
		clock:   cfg.clock,
		stop:    make(chan struct{}),
	}
	if cfg.cleanupInterval > 0 {
		go mc.sweep(cfg.cleanupInterval)
	}
	return mc
}

// Set stores a copy of value. A non-positive ttl falls back to 24h.
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultMemoryTTL
	}
	stored := append([]byte(nil), value...)

	mc.mu.Lock()
	defer mc.mu.Unlock()

	expireAt := mc.clock.Now().Add(ttl)
	if el, ok := mc.items[key]; ok {
		e := el.Value.(*memoryEntry)
		e.value, e.expireAt = stored, expireAt
		mc.lru.MoveToFront(el)
		return nil
	}

	for mc.lru.Len() >= mc.maxSize {
		mc.removeElement(mc.lru.Back())
	}
	mc.items[key] = mc.lru.PushFront(&memoryEntry{key: key, value: stored, expireAt: expireAt})
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	el, ok := mc.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	e := el.Value.(*memoryEntry)
	if e.expired(mc.clock.Now()) {
		mc.removeElement(el)
		return nil, ErrCacheMiss
	}
	mc.lru.MoveToFront(el)
	return append([]byte(nil), e.value...), nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for _, key := range keys {
		if el, ok := mc.items[key]; ok {
			mc.removeElement(el)
		}
	}
	return nil
}

// Exists reports whether any of keys holds a live entry. It does not touch
// recency.
func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.clock.Now()
	for _, key := range keys {
		if el, ok := mc.items[key]; ok && !el.Value.(*memoryEntry).expired(now) {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of stored entries, expired ones included.
func (mc *MemoryCache) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.lru.Len()
}

// Close stops the sweeper.
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(func() { close(mc.stop) })
	return nil
}

func (mc *MemoryCache) removeElement(el *list.Element) {
	mc.lru.Remove(el)
	delete(mc.items, el.Value.(*memoryEntry).key)
}

func (mc *MemoryCache) purgeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.clock.Now()
	for el := mc.lru.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*memoryEntry).expired(now) {
			mc.removeElement(el)
		}
		el = prev
	}
}

func (mc *MemoryCache) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			mc.purgeExpired()
		case <-mc.stop:
			return
		}
	}
}
