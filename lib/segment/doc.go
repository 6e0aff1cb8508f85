// Package segment implements the named shared-memory primitive underneath
// the lock. A segment's existence under a given name IS the lock state:
// existence means held, absence means free.
//
// Core Functionality:
//   - TryCreate: atomic create-if-absent. Exactly one of any number of
//     concurrent callers succeeds; every loser observes ErrExists, which is
//     distinguishable from real OS failures and drives the lock's poll loop.
//   - Destroy: unlinks the segment, transferring the name back to "free".
//     Only the creating Handle owns the segment and may destroy it.
//   - Open/Exists/Unlink: best-effort observation and leak recovery.
//
// Implementation Approach:
//
//	POSIX shared memory is backed by files in a tmpfs namespace (/dev/shm on
//	Linux), and exclusive file creation (O_CREATE|O_EXCL) is the atomic
//	compare-and-set the platform guarantees. A segment is therefore a
//	16-byte file created exclusively in that directory and memory-mapped
//	into the process. Releasing the lock destroys the backing file. On
//	systems without /dev/shm the system temp directory is used; the
//	SHMLOCK_DIR environment variable overrides both.
//
//	Cleanup on process exit is NOT guaranteed by the OS for this namespace:
//	a process that dies while holding a segment leaves it behind. That is an
//	operational concern handled by the tracking package and the clean
//	command, not by this primitive.
//
// Lifecycle Hooks:
//
//	Every create and destroy performed through this package is announced to
//	registered Hooks, unless the segment was created with track=false or a
//	suppression filter (Suppress) matches the name. The tracking package
//	uses this to maintain its process-wide leak registry; the suppression
//	filter exists to silence leak reporting for segment families that are
//	known to be managed correctly.
//
// Thread Safety:
//
//	Package-level operations and the hook registry are safe for concurrent
//	use. Individual Handles are not: each Handle belongs to the single
//	execution context that created it.
package segment
