package ratelimit

import (
	"sync"
	"time"

	"DivYield/pkg/util"
)

type bucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	last       time.Time
}

// Limiter keeps one token bucket per key, typically a client IP.
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*bucket
	clock util.Clock
}

// New returns a Limiter driven by the system clock.
func New() *Limiter { return NewWithClock(util.SystemClock{}) }

// NewWithClock returns a Limiter driven by clock.
func NewWithClock(clock util.Clock) *Limiter {
	return &Limiter{m: make(map[string]*bucket), clock: clock}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, refillRate: refillPerSec, last: now}
		l.m[key] = b
	}
	// refill
	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

// Prune drops buckets that have been idle long enough to be full again.
func (l *Limiter) Prune() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.m {
		if b.refillRate <= 0 {
			continue
		}
		full := time.Duration((b.capacity - b.tokens) / b.refillRate * float64(time.Second))
		if now.Sub(b.last) >= full {
			delete(l.m, k)
		}
	}
}
