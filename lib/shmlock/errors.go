package shmlock

import (
	"errors"

	"github.com/shmlock/shmlock/lib/segment"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

var (
	// ErrInvalidName reports an empty or namespace-illegal lock name.
	// It is raised at construction and never downgraded. Equal to the
	// segment package's sentinel so errors.Is works across both layers.
	ErrInvalidName = segment.ErrInvalidName

	// ErrTimeout is returned by the strict scoped-acquisition variants
	// (WithHeld, Do) when the lock could not be acquired within the
	// given timeout. The boolean-returning API never produces it.
	ErrTimeout = errors.New("shmlock: could not acquire lock within timeout")
)

// IsTimeout reports whether err is an acquisition timeout, as opposed to
// an OS-level failure.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
