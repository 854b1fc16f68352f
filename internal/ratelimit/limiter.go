package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window counter per caller key. Instances are injected
// where they are needed so tests can build isolated ones; counts reset on
// process restart and are not shared across instances.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	done    chan struct{}
}

// New starts a limiter allowing limit requests per window per key, with a
// background sweep every cleanupEvery. Call Close to stop the sweep.
func New(limit int, window, cleanupEvery time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
	}
	go l.cleanupLoop(cleanupEvery)
	return l
}

// Allow reports whether the key may proceed and how many requests remain in
// its current window.
func (l *Limiter) Allow(key string) (bool, int) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil || e.resetAt.Before(now) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true, l.limit - 1
	}
	if e.count >= l.limit {
		return false, 0
	}
	e.count++
	return true, l.limit - e.count
}

func (l *Limiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for key, e := range l.entries {
				if e.resetAt.Before(now) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *Limiter) Close() {
	close(l.done)
}
