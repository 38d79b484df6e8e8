package countdown

import (
	"context"
	"time"
)

// Clock returns the current instant. time.Now satisfies it.
type Clock func() time.Time

// Ticker recomputes a countdown on a fixed interval. Each tick re-reads the
// clock; there is no drift correction.
type Ticker struct {
	// Target is the instant being counted down to.
	Target time.Time
	// Interval is the recompute period. Zero means one minute.
	Interval time.Duration
	// Clock is the time source. Nil means time.Now.
	Clock Clock
}

// Now returns the state for the current clock reading.
func (t Ticker) Now() State {
	return Remaining(t.Target, t.now())
}

// Run calls fn with the current state immediately and then once per
// interval until ctx is done. fn runs on the calling goroutine.
func (t Ticker) Run(ctx context.Context, fn func(State)) {
	interval := t.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	fn(t.Now())

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			fn(t.Now())
		}
	}
}

func (t Ticker) now() time.Time {
	if t.Clock == nil {
		return time.Now()
	}

	return t.Clock()
}
