package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter serializes calls to a rate-limited service across the whole process.
// A call may start only once MinInterval has passed since the previous call
// finished; callers wait their turn on the mutex.
type Limiter struct {
	MinInterval time.Duration

	mu       sync.Mutex
	lastDone time.Time
	now      func() time.Time
}

func New(minInterval time.Duration) *Limiter {
	return &Limiter{
		MinInterval: minInterval,
		now:         time.Now,
	}
}

// Do waits for the interval, runs fn and records its completion time. It returns
// ctx.Err() without running fn when ctx ends while waiting.
func (l *Limiter) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lastDone.IsZero() {
		wait := l.MinInterval - l.now().Sub(l.lastDone)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	defer func() {
		l.lastDone = l.now()
	}()

	return fn(ctx)
}
