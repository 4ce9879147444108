package checker

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Limiter is a counting permit pool bounding how many checks are in flight
// at once. It is shared by all workers for the duration of one run.
type Limiter struct {
	sem *semaphore.Weighted
}

// NewLimiter returns a Limiter with n permits. n < 1 is coerced to 1 so a
// misconfigured bound degrades to sequential checking instead of deadlock.
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{sem: semaphore.NewWeighted(int64(n))}
}

// Acquire blocks until a permit is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire permit: %w", err)
	}
	return nil
}

// Release returns a permit taken by Acquire.
func (l *Limiter) Release() {
	l.sem.Release(1)
}
