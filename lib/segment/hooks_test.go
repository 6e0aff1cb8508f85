package segment

import (
	"testing"
)

// recordingHook collects lifecycle events. Hooks are invoked
// synchronously, so no locking is needed in these tests.
type recordingHook struct {
	created   []string
	destroyed []string
}

func (h *recordingHook) SegmentCreated(name string)   { h.created = append(h.created, name) }
func (h *recordingHook) SegmentDestroyed(name string) { h.destroyed = append(h.destroyed, name) }

// TestHookNotifications tests that registered hooks see create and
// destroy events and stop seeing them after unregistration
func TestHookNotifications(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	hook := &recordingHook{}
	RegisterHook(hook)
	defer UnregisterHook(hook)

	h, err := TryCreate("hooked", true)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	if err := h.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if len(hook.created) != 1 || hook.created[0] != "hooked" {
		t.Errorf("created events = %v, want [hooked]", hook.created)
	}
	if len(hook.destroyed) != 1 || hook.destroyed[0] != "hooked" {
		t.Errorf("destroyed events = %v, want [hooked]", hook.destroyed)
	}

	UnregisterHook(hook)

	h2, err := TryCreate("hooked", true)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	defer h2.Destroy()

	if len(hook.created) != 1 {
		t.Errorf("unregistered hook still received events: %v", hook.created)
	}
}

// TestRegisterHookIdempotent tests that double registration does not
// duplicate events
func TestRegisterHookIdempotent(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	hook := &recordingHook{}
	RegisterHook(hook)
	RegisterHook(hook)
	defer UnregisterHook(hook)

	h, err := TryCreate("once", true)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	defer h.Destroy()

	if len(hook.created) != 1 {
		t.Errorf("hook received %d create events, want 1", len(hook.created))
	}
}

// TestSuppressionPattern tests that events for matching names are
// dropped while non-matching names keep being reported
func TestSuppressionPattern(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	hook := &recordingHook{}
	RegisterHook(hook)
	defer UnregisterHook(hook)

	Suppress("x", false)
	defer Unsuppress()

	if !Suppressed("xyz") {
		t.Error("name containing the pattern should be suppressed")
	}
	if Suppressed("other") {
		t.Error("name without the pattern should not be suppressed")
	}

	matching, err := TryCreate("xyz", true)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	defer matching.Destroy()

	plain, err := TryCreate("other", true)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	defer plain.Destroy()

	if len(hook.created) != 1 || hook.created[0] != "other" {
		t.Errorf("created events = %v, want [other]", hook.created)
	}
}

// TestSuppressionEmptyPattern tests that the empty pattern matches all
// segments
func TestSuppressionEmptyPattern(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	hook := &recordingHook{}
	RegisterHook(hook)
	defer UnregisterHook(hook)

	Suppress("", false)
	defer Unsuppress()

	h, err := TryCreate("anything", true)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	if err := h.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if len(hook.created) != 0 || len(hook.destroyed) != 0 {
		t.Errorf("events should be fully suppressed, got created=%v destroyed=%v",
			hook.created, hook.destroyed)
	}
}

// TestUntrackedSegment tests that segments created with track=false
// never emit events, including on destroy
func TestUntrackedSegment(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	hook := &recordingHook{}
	RegisterHook(hook)
	defer UnregisterHook(hook)

	h, err := TryCreate("quiet", false)
	if err != nil {
		t.Fatalf("TryCreate failed: %v", err)
	}
	if err := h.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	if len(hook.created) != 0 || len(hook.destroyed) != 0 {
		t.Errorf("untracked segment emitted events: created=%v destroyed=%v",
			hook.created, hook.destroyed)
	}
}
