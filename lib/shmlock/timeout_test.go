package shmlock

import (
	"testing"
	"time"
)

// TestTimeoutWindows tests the wait window of every timeout kind
func TestTimeoutWindows(t *testing.T) {
	tests := []struct {
		name    string
		timeout Timeout
		window  time.Duration
		bounded bool
	}{
		{"indefinite", Indefinite, 0, false},
		{"no-wait", NoWait, 0, true},
		{"default", DefaultWait, DefaultWindow, true},
		{"exact", After(3 * time.Second), 3 * time.Second, true},
		{"negative behaves like no-wait", After(-time.Second), 0, true},
	}

	for _, tt := range tests {
		window, bounded := tt.timeout.window()
		if window != tt.window || bounded != tt.bounded {
			t.Errorf("%s: window() = (%s, %t), want (%s, %t)",
				tt.name, window, bounded, tt.window, tt.bounded)
		}
	}
}

// TestTimeoutZeroValue tests that the zero value waits indefinitely
func TestTimeoutZeroValue(t *testing.T) {
	var zero Timeout
	if _, bounded := zero.window(); bounded {
		t.Error("zero Timeout should be unbounded")
	}
}

// TestTimeoutString tests the log representation
func TestTimeoutString(t *testing.T) {
	if Indefinite.String() != "indefinite" {
		t.Errorf("Indefinite.String() = %q", Indefinite.String())
	}
	if NoWait.String() != "no-wait" {
		t.Errorf("NoWait.String() = %q", NoWait.String())
	}
	if After(time.Second).String() != "1s" {
		t.Errorf("After(1s).String() = %q", After(time.Second).String())
	}
}
