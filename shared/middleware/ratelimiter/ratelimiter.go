package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// bucket is a token bucket for a single client
type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client key.
// Buckets idle for longer than ttl are dropped by Sweep.
type ClientRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens per second
	burst   float64
	ttl     time.Duration
	now     func() time.Time
}

func New(rate, burst float64, ttl time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (l *ClientRateLimiter) get(key string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = b
	}
	return b
}

// Allow takes one token from the client's bucket.
func (l *ClientRateLimiter) Allow(key string) bool {
	now := l.now()
	b := l.get(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastSeen).Seconds()
	if elapsed > 0 {
		b.tokens = min(b.tokens+elapsed*l.rate, l.burst)
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Sweep removes buckets idle longer than ttl and returns how many were removed.
func (l *ClientRateLimiter) Sweep() int {
	cutoff := l.now().Add(-l.ttl)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastSeen.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Run sweeps idle buckets every interval until ctx is done.
func (l *ClientRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
