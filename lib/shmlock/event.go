package shmlock

import (
	"sync"
	"time"
)

// --------------------------------------------------------------------------
// Exit Event
// --------------------------------------------------------------------------

// ExitEvent is a clearable cancellation signal shared between any number
// of Lock instances in one process. While set, every acquisition aborts
// immediately; clearing it re-enables acquisition. All methods are safe
// for concurrent use.
type ExitEvent struct {
	mu  sync.Mutex
	set bool
	ch  chan struct{} // closed while the event is set
}

// NewExitEvent creates an unset event.
func NewExitEvent() *ExitEvent {
	return &ExitEvent{ch: make(chan struct{})}
}

// Set signals the event. All pending and future waits return immediately
// until Clear is called.
func (e *ExitEvent) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		e.set = true
		close(e.ch)
	}
}

// Clear resets the event to the unset state.
func (e *ExitEvent) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set {
		e.set = false
		e.ch = make(chan struct{})
	}
}

// IsSet reports whether the event is currently set.
func (e *ExitEvent) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}

// done returns a channel that is closed while the event is set.
func (e *ExitEvent) done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ch
}

// Wait blocks for at most d and returns true if the event was set before
// the duration elapsed.
func (e *ExitEvent) Wait(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-e.done():
		return true
	case <-timer.C:
		return e.IsSet()
	}
}
