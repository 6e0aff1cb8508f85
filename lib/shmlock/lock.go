package shmlock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shmlock/shmlock/lib/logging"
	"github.com/shmlock/shmlock/lib/segment"
)

// --------------------------------------------------------------------------
// Lock Type
// --------------------------------------------------------------------------

// Lock is an inter-process mutex identified purely by name. Cooperating
// processes construct their own Lock bound to the same name; no handle is
// exchanged between them. The lock is held by whichever instance currently
// owns the named segment.
//
// A Lock instance is NOT safe for concurrent use: every concurrent
// execution context (goroutine, process) must construct its own Lock
// bound to the shared name.
type Lock struct {
	cfg    Config
	logger logging.ILogger
	token  uuid.UUID
	m      *lockMetrics

	// handle is non-nil exactly while this instance owns the segment.
	handle    *segment.Handle
	reentry   int
	heldSince time.Time
}

// New creates a Lock from the given config. The name is validated
// eagerly; an empty or namespace-illegal name fails here with
// ErrInvalidName rather than on first acquire.
func New(cfg Config) (*Lock, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	token, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generate lock token: %w", err)
	}

	l := &Lock{
		cfg:    cfg,
		logger: cfg.Logger,
		token:  token,
		m:      newLockMetrics(cfg.Name),
	}
	l.logger.Debugf("lock %s initialized with poll interval %s", l, cfg.PollInterval)
	return l, nil
}

// NewLock creates a Lock with default configuration for the given name.
func NewLock(name string) (*Lock, error) {
	return New(Config{Name: name})
}

func (l *Lock) String() string {
	return fmt.Sprintf("Lock(name=%s, token=%s)", l.cfg.Name, l.token)
}

// Name returns the lock name.
func (l *Lock) Name() string {
	return l.cfg.Name
}

// PollInterval returns the sleep between failed acquisition attempts.
func (l *Lock) PollInterval() time.Duration {
	return l.cfg.PollInterval
}

// Token returns this instance's owner token. The token is written into
// the segment on acquisition, so the current holder of a contended lock
// can be identified via HolderToken.
func (l *Lock) Token() string {
	return l.token.String()
}

// Held reports whether this instance currently holds the lock.
func (l *Lock) Held() bool {
	return l.handle != nil
}

// ExitEvent returns the cancellation signal of this lock, or nil if the
// config did not provide one.
func (l *Lock) ExitEvent() *ExitEvent {
	return l.cfg.ExitEvent
}

// --------------------------------------------------------------------------
// Acquire
// --------------------------------------------------------------------------

// Acquire tries to take the lock according to the given timeout policy.
// It returns true on success and false when the timeout elapsed or the
// cancellation signal fired; an error is only returned for real OS
// failures (permissions, resource limits), never for ordinary contention.
//
// Acquire is reentrant for this instance: if the lock is already held,
// the reentry depth is bumped and Acquire returns true immediately
// without touching the OS. Release must be called once per successful
// Acquire.
func (l *Lock) Acquire(t Timeout) (bool, error) {
	return l.AcquireContext(context.Background(), t)
}

// AcquireContext is Acquire with an additional context. Context
// cancellation behaves like the exit event: it is checked between poll
// iterations and takes priority over any remaining timeout budget.
func (l *Lock) AcquireContext(ctx context.Context, t Timeout) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Self-held detection: the segment cannot be created a second time
	// by its own holder, so a held lock re-acquires by counting.
	if l.handle != nil {
		l.reentry++
		l.logger.Debugf("lock %s re-acquired, depth %d", l, l.reentry)
		return true, nil
	}

	window, bounded := t.window()
	start := time.Now()

	for {
		if l.cancelled(ctx) {
			l.logger.Debugf("acquisition of lock %s cancelled", l)
			return false, nil
		}

		handle, err := segment.TryCreate(l.cfg.Name, !l.cfg.NoTrack)
		if err == nil {
			// The token is written after creation, not atomically with
			// it. Observers reading the segment in that window see a
			// zero token.
			copy(handle.Bytes(), l.token[:])
			l.handle = handle
			l.reentry = 1
			l.heldSince = time.Now()
			l.m.acquires.Inc()
			l.logger.Debugf("acquired lock %s", l)
			return true, nil
		}
		if !errors.Is(err, segment.ErrExists) {
			// Permission or resource-limit failures are fatal and are
			// never retried.
			return false, err
		}

		l.m.contended.Inc()
		if bounded && time.Since(start) >= window {
			l.m.timeouts.Inc()
			l.logger.Debugf("could not acquire lock %s within %s", l, t)
			return false, nil
		}
		l.logger.Debugf("lock %s is contended, retrying in %s (timeout %s)",
			l, l.cfg.PollInterval, t)
		l.wait(ctx, l.cfg.PollInterval)
	}
}

// cancelled reports whether the exit event or the context aborted the
// acquisition.
func (l *Lock) cancelled(ctx context.Context) bool {
	if l.cfg.ExitEvent != nil && l.cfg.ExitEvent.IsSet() {
		return true
	}
	return ctx.Err() != nil
}

// wait sleeps for one poll interval, returning early if the exit event
// or the context fires mid-sleep.
func (l *Lock) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	var exit <-chan struct{}
	if l.cfg.ExitEvent != nil {
		exit = l.cfg.ExitEvent.done()
	}

	select {
	case <-timer.C:
	case <-exit:
	case <-ctx.Done():
	}
}

// --------------------------------------------------------------------------
// Release
// --------------------------------------------------------------------------

// Release undoes one successful Acquire. The segment is destroyed when
// the outermost hold is released; releasing a lock that is not held is a
// no-op, so Release is unconditionally safe in cleanup paths.
func (l *Lock) Release() error {
	if l.handle == nil {
		return nil
	}
	if l.reentry > 1 {
		l.reentry--
		l.logger.Debugf("lock %s released one reentry level, depth %d", l, l.reentry)
		return nil
	}

	err := l.handle.Destroy()
	l.handle = nil
	l.reentry = 0
	l.m.releases.Inc()
	l.m.holdTime.UpdateDuration(l.heldSince)

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// The segment was unlinked under us, e.g. force-cleaned by
			// the resource tracker. The lock is free either way.
			l.logger.Debugf("segment of lock %s was already gone on release", l)
			return nil
		}
		return fmt.Errorf("release lock %s: %w", l.cfg.Name, err)
	}
	l.logger.Debugf("released lock %s", l)
	return nil
}

// --------------------------------------------------------------------------
// Observation
// --------------------------------------------------------------------------

// HolderToken reads the owner token out of the live segment. It returns
// ok=false when the lock is currently free. The answer is inherently
// racy: the holder may release between the read and any action taken on
// it. A zero token means the holder crashed (or was interrupted) between
// creating the segment and writing its token.
func (l *Lock) HolderToken() (token string, ok bool, err error) {
	handle, err := segment.Open(l.cfg.Name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer handle.Close()

	id, err := uuid.FromBytes(handle.Bytes())
	if err != nil {
		return "", false, err
	}
	return id.String(), true, nil
}
