package shmlock

import (
	"testing"
	"time"
)

// TestExitEventSetClear tests the basic state transitions
func TestExitEventSetClear(t *testing.T) {
	event := NewExitEvent()

	if event.IsSet() {
		t.Error("new event should be unset")
	}

	event.Set()
	if !event.IsSet() {
		t.Error("event should be set after Set")
	}

	// setting twice must not panic on the closed channel
	event.Set()

	event.Clear()
	if event.IsSet() {
		t.Error("event should be unset after Clear")
	}

	event.Clear()
}

// TestExitEventWaitReturnsEarly tests that Wait unblocks when the event
// fires mid-sleep
func TestExitEventWaitReturnsEarly(t *testing.T) {
	event := NewExitEvent()

	go func() {
		time.Sleep(20 * time.Millisecond)
		event.Set()
	}()

	start := time.Now()
	fired := event.Wait(5 * time.Second)
	elapsed := time.Since(start)

	if !fired {
		t.Error("Wait should report the event as set")
	}
	if elapsed > time.Second {
		t.Errorf("Wait took %s, should return shortly after Set", elapsed)
	}
}

// TestExitEventWaitTimesOut tests that Wait runs out quietly when the
// event stays unset
func TestExitEventWaitTimesOut(t *testing.T) {
	event := NewExitEvent()

	if fired := event.Wait(10 * time.Millisecond); fired {
		t.Error("Wait should report an unset event as not fired")
	}
}
