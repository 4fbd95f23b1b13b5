package ratelimit

import (
	"sync"
	"time"
)

// bucket tracks the token state for a single key.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter is a token-bucket rate limiter keyed by client identifier. Every
// key gets the same capacity, refilled evenly over window.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	window   time.Duration
	now      func() time.Time
}

// New creates a Limiter that allows capacity requests per window. A
// non-positive capacity disables limiting.
func New(capacity int, window time.Duration) *Limiter {
	return &Limiter{
		buckets:  make(map[string]*bucket),
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
}

// Enabled reports whether the limiter rejects anything at all.
func (l *Limiter) Enabled() bool {
	return l != nil && l.capacity > 0
}

// take returns the refilled bucket for key. Must be called with l.mu held.
func (l *Limiter) take(key string) *bucket {
	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.capacity), lastRefill: now}
		l.buckets[key] = b
		return b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * float64(l.capacity) / l.window.Seconds()
		if b.tokens > float64(l.capacity) {
			b.tokens = float64(l.capacity)
		}
		b.lastRefill = now
	}
	return b
}

// Allow consumes one token for key and reports whether the request may
// proceed.
func (l *Limiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.take(key)
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Status returns the limit, the whole tokens left for key and the time the
// bucket will be full again.
func (l *Limiter) Status(key string) (limit int, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.take(key)
	limit = l.capacity
	remaining = max(int(b.tokens), 0)

	deficit := float64(l.capacity) - b.tokens
	if deficit <= 0 {
		return limit, remaining, l.now()
	}
	perToken := l.window.Seconds() / float64(l.capacity)
	resetAt = l.now().Add(time.Duration(deficit * perToken * float64(time.Second)))
	return limit, remaining, resetAt
}

// Sweep drops buckets that have been idle long enough to be full again and
// returns how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	removed := 0
	for key, b := range l.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
