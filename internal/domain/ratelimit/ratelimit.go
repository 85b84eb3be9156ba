// Package ratelimit enforces a minimum interval between accepted
// submissions from the same user.
//
// The limiter is commit-on-success: Allow only checks, and the record is
// advanced by Commit after the downstream write succeeded, so failed
// submissions never penalize the user.
package ratelimit

import (
	"sync"
	"time"

	"github.com/ArgyPorgy/eigentribe/pkg/metrics"
)

// Defaults for the limiter.
const (
	DefaultWindow         = 60 * time.Second
	defaultSweepThreshold = 1000
)

// Limiter tracks the last accepted submission time per user id. State is
// process-wide and not persisted; a restart resets every window.
type Limiter struct {
	mu             sync.Mutex
	window         time.Duration
	sweepThreshold int
	lastAccepted   map[string]time.Time
	now            func() time.Time
}

// New creates a Limiter with the given options.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		window:         DefaultWindow,
		sweepThreshold: defaultSweepThreshold,
		lastAccepted:   make(map[string]time.Time),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether a submission from userID may proceed. When the
// window has not elapsed it returns false and the remaining wait in whole
// seconds, rounded up. Allow never advances the record.
func (l *Limiter) Allow(userID string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, ok := l.lastAccepted[userID]
	if !ok {
		return true, 0
	}
	elapsed := l.now().Sub(last)
	if elapsed >= l.window {
		return true, 0
	}
	remaining := l.window - elapsed
	wait := int((remaining + time.Second - 1) / time.Second)
	return false, wait
}

// Commit records an accepted submission for userID. When the record set
// has grown past the sweep threshold, entries older than the window are
// swept synchronously on this call; there is no background cleanup.
func (l *Limiter) Commit(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.lastAccepted[userID] = now

	if len(l.lastAccepted) > l.sweepThreshold {
		oldest := now.Add(-l.window)
		for id, ts := range l.lastAccepted {
			if ts.Before(oldest) {
				delete(l.lastAccepted, id)
			}
		}
	}
	metrics.UpdateRateLimitEntries(len(l.lastAccepted))
}

// Size returns the number of tracked rate limit records.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastAccepted)
}
