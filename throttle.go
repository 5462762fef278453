package sensor

import (
	"sync"
	"time"
)

// Throttle gates a zero-argument operation behind a minimum time interval.
// The first call always executes; subsequent calls execute only once the interval has
// elapsed since the last completed run, and are otherwise silent no-ops with no
// observable effect. One Throttle instance guards exactly one operation identity.
//
// Callers are serialized with a mutex, so the at-most-one-execution-per-interval
// guarantee holds even when the gated operation is driven from concurrent pollers.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewThrottle constructs a throttle enforcing the given minimum interval between runs.
// A non-positive interval disables the gate entirely and every call executes.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Run executes op if the minimum interval has elapsed since the last completed run.
// It returns true when op actually executed, along with any error op produced.
// A gated call returns (false, nil) and leaves all state untouched.
//
// The last-run timestamp is recorded after op returns, not before it starts, so a slow
// operation cannot shrink the effective interval. The timestamp is only recorded when
// op returns nil: a propagating failure leaves the gate open and the next call retries
// immediately.
func (t *Throttle) Run(op func() error) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Gate check. A zero timestamp means the operation has never run, so the first
	// call always passes regardless of the configured interval.
	if !t.last.IsZero() && time.Since(t.last) < t.interval {
		return false, nil
	}

	if err := op(); err != nil {
		return true, err
	}

	t.last = time.Now()
	return true, nil
}
