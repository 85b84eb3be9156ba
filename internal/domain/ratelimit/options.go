package ratelimit

import "time"

// Option applies a configuration option to the Limiter.
type Option func(*Limiter)

// WithWindow sets the minimum interval between accepted submissions.
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) {
		if window > 0 {
			l.window = window
		}
	}
}

// WithSweepThreshold sets the record count past which Commit sweeps
// expired entries.
func WithSweepThreshold(threshold int) Option {
	return func(l *Limiter) {
		if threshold > 0 {
			l.sweepThreshold = threshold
		}
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}
