package shmlock

import (
	"fmt"
	"time"

	"github.com/shmlock/shmlock/lib/logging"
	"github.com/shmlock/shmlock/lib/segment"
)

// DefaultPollInterval is the sleep between failed acquisition attempts
// when the config does not specify one.
const DefaultPollInterval = 50 * time.Millisecond

// --------------------------------------------------------------------------
// Lock Configuration
// --------------------------------------------------------------------------

// Config holds the construction parameters of a Lock.
type Config struct {
	// Name identifies the lock across all cooperating processes on the
	// host. Required; must be valid in the shared-memory namespace
	// (see segment.ValidateName).
	Name string

	// PollInterval is the sleep between failed acquisition attempts.
	// Zero selects DefaultPollInterval; negative values are rejected.
	PollInterval time.Duration

	// Logger receives debug-level acquisition logs. Optional.
	Logger logging.ILogger

	// ExitEvent aborts any acquisition while set. Optional; locks that
	// should be cancellable together share one event.
	ExitEvent *ExitEvent

	// NoTrack hints that this lock's segments should not be recorded by
	// lifecycle hooks (and therefore not by the resource tracker).
	NoTrack bool
}

// withDefaults validates the config and fills in defaults.
func (c Config) withDefaults() (Config, error) {
	if err := segment.ValidateName(c.Name); err != nil {
		return c, err
	}
	if c.PollInterval < 0 {
		return c, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	c.Logger = logging.OrNop(c.Logger)
	return c, nil
}
