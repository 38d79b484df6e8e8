// Package countdown computes the time remaining until a fixed target instant
// and re-evaluates it on a periodic tick.
package countdown

import (
	"fmt"
	"time"
)

const (
	day = 24 * time.Hour
)

// Precision selects how often a countdown is recomputed and whether seconds
// are shown to the reader.
type Precision string

const (
	// PrecisionSeconds recomputes every second and shows seconds.
	PrecisionSeconds Precision = "seconds"
	// PrecisionMinutes recomputes every minute and hides seconds.
	PrecisionMinutes Precision = "minutes"
)

// Interval returns the tick interval for the precision. Unknown values fall
// back to PrecisionMinutes.
func (p Precision) Interval() time.Duration {
	if p == PrecisionSeconds {
		return time.Second
	}

	return time.Minute
}

// ShowSeconds reports whether the seconds field should be displayed.
func (p Precision) ShowSeconds() bool { return p == PrecisionSeconds }

// State is the whole-unit breakdown of the time left until the target.
// It is always derived from Remaining and never mutated field by field.
type State struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Remaining returns the floor-divided breakdown of the milliseconds left
// between now and target. Once now is at or past target every field is zero.
func Remaining(target, now time.Time) State {
	left := target.Sub(now).Truncate(time.Millisecond)
	if left <= 0 {
		return State{}
	}

	ms := left.Milliseconds()

	return State{
		Days:    int(ms / day.Milliseconds()),
		Hours:   int(ms % day.Milliseconds() / time.Hour.Milliseconds()),
		Minutes: int(ms % time.Hour.Milliseconds() / time.Minute.Milliseconds()),
		Seconds: int(ms % time.Minute.Milliseconds() / time.Second.Milliseconds()),
	}
}

// IsZero reports whether the target has been reached.
func (s State) IsZero() bool {
	return s == State{}
}

// String formats the state as "2d 03h 04m 05s".
func (s State) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", s.Days, s.Hours, s.Minutes, s.Seconds)
}

// Format formats the state for the given precision, omitting seconds when
// the precision does not show them.
func (s State) Format(p Precision) string {
	if p.ShowSeconds() {
		return s.String()
	}

	return fmt.Sprintf("%dd %02dh %02dm", s.Days, s.Hours, s.Minutes)
}
