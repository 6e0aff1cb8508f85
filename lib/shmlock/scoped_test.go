package shmlock

import (
	"errors"
	"testing"

	"github.com/shmlock/shmlock/lib/segment"
)

// TestWithYieldsSuccess tests the boolean-yielding scoped form on the
// happy path, including release after return
func TestWithYieldsSuccess(t *testing.T) {
	setupDir(t)
	lock := newTestLock(t, "scoped")

	ran := false
	err := lock.With(NoWait, func(acquired bool) error {
		ran = true
		if !acquired {
			t.Error("uncontended scoped acquire should succeed")
		}
		if !lock.Held() {
			t.Error("lock should be held inside the scope")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if !ran {
		t.Fatal("scope function did not run")
	}
	if lock.Held() || segment.Exists("scoped") {
		t.Error("lock should be released after the scope")
	}
}

// TestWithReleasesOnError tests that the lock is released even when the
// scope function fails
func TestWithReleasesOnError(t *testing.T) {
	setupDir(t)
	lock := newTestLock(t, "failing")

	boom := errors.New("boom")
	err := lock.With(NoWait, func(acquired bool) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("With returned %v, want the scope error", err)
	}
	if lock.Held() || segment.Exists("failing") {
		t.Error("lock should be released after a failing scope")
	}
}

// TestWithContended tests that the scope still runs with acquired=false
// and that nothing is released afterwards
func TestWithContended(t *testing.T) {
	setupDir(t)

	holder := newTestLock(t, "taken")
	if acquired, err := holder.Acquire(NoWait); err != nil || !acquired {
		t.Fatalf("holder acquire failed: %v %v", acquired, err)
	}
	defer holder.Release()

	contender := newTestLock(t, "taken")
	err := contender.With(NoWait, func(acquired bool) error {
		if acquired {
			t.Error("contended scoped acquire should yield false")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if !segment.Exists("taken") {
		t.Error("the holder's segment must survive a failed scoped acquire")
	}
}

// TestWithHeldTimeout tests the strict scoped variant's distinct
// timeout error
func TestWithHeldTimeout(t *testing.T) {
	setupDir(t)

	holder := newTestLock(t, "strict")
	if acquired, err := holder.Acquire(NoWait); err != nil || !acquired {
		t.Fatalf("holder acquire failed: %v %v", acquired, err)
	}
	defer holder.Release()

	contender := newTestLock(t, "strict")
	err := contender.WithHeld(NoWait, func() error {
		t.Error("scope must not run when acquisition timed out")
		return nil
	})
	if !IsTimeout(err) {
		t.Errorf("WithHeld returned %v, want ErrTimeout", err)
	}
}

// TestWithHeldRunsScope tests the strict variant on the happy path
func TestWithHeldRunsScope(t *testing.T) {
	setupDir(t)
	lock := newTestLock(t, "strict-ok")

	ran := false
	err := lock.WithHeld(NoWait, func() error {
		ran = true
		if !lock.Held() {
			t.Error("lock should be held inside the scope")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithHeld failed: %v", err)
	}
	if !ran {
		t.Fatal("scope function did not run")
	}
	if lock.Held() {
		t.Error("lock should be released after the scope")
	}
}

// TestDo tests the convenience form
func TestDo(t *testing.T) {
	setupDir(t)
	lock := newTestLock(t, "do")

	ran := false
	if err := lock.Do(func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !ran {
		t.Fatal("scope function did not run")
	}
	if lock.Held() {
		t.Error("lock should be released after Do")
	}
}
