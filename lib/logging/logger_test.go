package logging

import (
	"testing"
)

// TestParseLevel tests level parsing including aliases and failures
func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		level LogLevel
		fails bool
	}{
		{"debug", DEBUG, false},
		{"info", INFO, false},
		{"warn", WARNING, false},
		{"warning", WARNING, false},
		{"error", ERROR, false},
		{"DEBUG", DEBUG, false},
		{"verbose", INFO, true},
		{"", INFO, true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		if tt.fails {
			if err == nil {
				t.Errorf("ParseLevel(%q) should fail", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", tt.input, err)
			continue
		}
		if level != tt.level {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, level, tt.level)
		}
	}
}

// TestOrNop tests that a nil logger is replaced by a safe nop
func TestOrNop(t *testing.T) {
	logger := OrNop(nil)
	if logger == nil {
		t.Fatal("OrNop(nil) returned nil")
	}

	// must not panic
	logger.SetLevel(DEBUG)
	logger.Debugf("dropped %s", "message")
	logger.Infof("dropped")
	logger.Warningf("dropped")
	logger.Errorf("dropped")

	real := New("test")
	if OrNop(real) != real {
		t.Error("OrNop should pass a non-nil logger through")
	}
}
