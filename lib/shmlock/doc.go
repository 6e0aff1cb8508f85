// Package shmlock implements a named inter-process mutex on top of the
// segment primitive. Cooperating processes coordinate purely through a
// shared string name: whoever manages to create the named shared-memory
// segment holds the lock, and destroying the segment releases it. No
// handle or connection is passed between processes.
//
// Core Functionality:
//   - Acquire with an explicit timeout policy (Indefinite, NoWait,
//     DefaultWait, After) returning a boolean instead of raising on
//     ordinary timeouts
//   - Reentrant re-acquisition by the holding instance, counted so that
//     Acquire and Release pair up
//   - Scoped helpers (With, WithHeld, Do) that guarantee release on all
//     exit paths
//   - Cooperative cancellation through a shared ExitEvent or a context
//
// Implementation Approach:
//
//	Acquisition drives segment.TryCreate in a poll loop. The create call
//	is the atomic compare-and-set: under contention exactly one process
//	succeeds and every loser observes the contention sentinel, sleeps for
//	the configured poll interval and retries. Timeouts are measured on
//	the monotonic clock from the start of the call, so a bounded acquire
//	returns within the window plus at most one poll interval. The
//	cancellation signal is checked once per iteration and always wins
//	over remaining timeout budget.
//
//	On success the lock writes its random UUID token into the segment,
//	which lets operators identify the current holder of a contended lock
//	(HolderToken). Note that the write happens after the atomic create:
//	a token of all zeros identifies a holder that died in between.
//
// Concurrency Model:
//
//	The lock has no internal threading; the poll loop blocks the calling
//	goroutine. A Lock instance must not be shared between concurrent
//	execution contexts since its self-held state is mutated without
//	synchronization. Instead, every goroutine or process constructs its
//	own Lock bound to the same name. No fairness between contenders is
//	guaranteed: the OS picks the create-call winner, and starvation under
//	heavy contention is possible. This is a coarse, low-frequency
//	primitive, not a high-throughput mutex.
//
// Crash Behavior:
//
//	A process that exits without releasing leaves the segment behind and
//	the lock stays "held" until the segment is removed. The tracking
//	package detects and recovers such leaks within a process; across
//	processes the clean command (or segment.Unlink) is the escape hatch.
//
// Usage Example:
//
//	lock, err := shmlock.NewLock("build-cache")
//	if err != nil {
//	    // invalid name
//	}
//
//	err = lock.WithHeld(shmlock.After(5*time.Second), func() error {
//	    // critical section, lock is held
//	    return nil
//	})
//	if errors.Is(err, shmlock.ErrTimeout) {
//	    // another process held the lock for the whole window
//	}
package shmlock
