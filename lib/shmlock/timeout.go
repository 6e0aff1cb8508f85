package shmlock

import (
	"fmt"
	"time"
)

// DefaultWindow is the wait window of the DefaultWait timeout.
const DefaultWindow = time.Second

// --------------------------------------------------------------------------
// Timeout Type
// --------------------------------------------------------------------------

type timeoutKind int

const (
	timeoutIndefinite timeoutKind = iota
	timeoutNoWait
	timeoutDefault
	timeoutExact
)

// Timeout is the tagged wait policy for Acquire. The zero value waits
// indefinitely. Using an explicit type instead of overloading a numeric
// parameter keeps call sites unambiguous: Indefinite, NoWait, DefaultWait
// and After(d) cannot be confused with one another.
type Timeout struct {
	kind timeoutKind
	d    time.Duration
}

var (
	// Indefinite polls until the lock is acquired or the cancellation
	// signal fires.
	Indefinite = Timeout{kind: timeoutIndefinite}

	// NoWait makes exactly one acquisition attempt without sleeping.
	NoWait = Timeout{kind: timeoutNoWait}

	// DefaultWait polls for the default window (one second).
	DefaultWait = Timeout{kind: timeoutDefault}
)

// After returns a Timeout that polls for at most d, measured on the
// monotonic clock from the start of the Acquire call. Negative durations
// behave like NoWait.
func After(d time.Duration) Timeout {
	if d < 0 {
		return NoWait
	}
	return Timeout{kind: timeoutExact, d: d}
}

// window returns the wait window and whether the timeout is bounded.
// NoWait reports a zero bounded window; Indefinite reports unbounded.
func (t Timeout) window() (time.Duration, bool) {
	switch t.kind {
	case timeoutIndefinite:
		return 0, false
	case timeoutNoWait:
		return 0, true
	case timeoutDefault:
		return DefaultWindow, true
	default:
		return t.d, true
	}
}

func (t Timeout) String() string {
	switch t.kind {
	case timeoutIndefinite:
		return "indefinite"
	case timeoutNoWait:
		return "no-wait"
	case timeoutDefault:
		return fmt.Sprintf("default (%s)", DefaultWindow)
	default:
		return t.d.String()
	}
}
