package segment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	// Size is the size of every lock segment in bytes. It holds the
	// UUID token of the lock instance that created the segment.
	Size = 16

	// EnvDir overrides the shared-memory directory when set. Used by
	// tests and by deployments that want to isolate lock namespaces.
	EnvDir = "SHMLOCK_DIR"

	// maxNameLen is the NAME_MAX bound of common filesystems. Segment
	// names are single path components below the shared-memory directory.
	maxNameLen = 255

	segmentMode = 0o600
)

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrExists is returned by TryCreate when another holder already
	// created the segment. It is the contention signal the lock's poll
	// loop retries on; callers must distinguish it from real OS errors.
	ErrExists = errors.New("segment already exists")

	// ErrInvalidName is returned for names that cannot be used in the
	// shared-memory namespace.
	ErrInvalidName = errors.New("invalid segment name")
)

// --------------------------------------------------------------------------
// Name and Path Handling
// --------------------------------------------------------------------------

// Dir returns the directory backing the shared-memory namespace.
// The EnvDir environment variable takes precedence, then /dev/shm
// (Linux), then the system temp directory.
func Dir() string {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return "/dev/shm"
	}
	return os.TempDir()
}

// ValidateName checks that name is usable as a segment name: non-empty,
// a single path component, and within the NAME_MAX bound.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: name %q must not contain path separators", ErrInvalidName, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: name %q is reserved", ErrInvalidName, name)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidName, maxNameLen)
	}
	return nil
}

// pathOf maps a segment name to its backing file path.
func pathOf(name string) string {
	return filepath.Join(Dir(), name)
}

// --------------------------------------------------------------------------
// Handle
// --------------------------------------------------------------------------

// Handle is an attached shared-memory segment. A Handle obtained from
// TryCreate owns the segment and must eventually be released via Destroy;
// a Handle obtained from Open only observes it and is released via Close.
type Handle struct {
	name    string
	file    *os.File
	data    []byte
	owned   bool
	tracked bool
}

// Name returns the segment name.
func (h *Handle) Name() string {
	return h.name
}

// Bytes returns the mapped segment contents. The slice is only valid
// until Close or Destroy is called.
func (h *Handle) Bytes() []byte {
	return h.data
}

// Close unmaps and closes the segment without removing it from the
// namespace. Safe to call multiple times.
func (h *Handle) Close() error {
	var errs []error
	if h.data != nil {
		if err := unix.Munmap(h.data); err != nil {
			errs = append(errs, fmt.Errorf("munmap segment %q: %w", h.name, err))
		}
		h.data = nil
	}
	if h.file != nil {
		if err := h.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close segment %q: %w", h.name, err))
		}
		h.file = nil
	}
	return errors.Join(errs...)
}

// Destroy unmaps, closes and unlinks the segment, transferring the name
// back to "free". Only the owning Handle may call Destroy. If the backing
// file is already gone (e.g. force-cleaned by the resource tracker) the
// unlink step reports os.ErrNotExist wrapped in the returned error.
func (h *Handle) Destroy() error {
	err := h.Close()
	if rmErr := os.Remove(pathOf(h.name)); rmErr != nil {
		err = errors.Join(err, fmt.Errorf("unlink segment %q: %w", h.name, rmErr))
	} else if h.owned && h.tracked {
		notifyDestroyed(h.name)
	}
	return err
}

// --------------------------------------------------------------------------
// Primitive Operations
// --------------------------------------------------------------------------

// TryCreate atomically creates the named segment. Exactly one concurrent
// caller succeeds; all others get ErrExists. Any other error is a real
// OS failure (permissions, resource limits, invalid name) and must not
// be retried.
//
// The track flag controls whether hook notifications are emitted for this
// segment's lifecycle (see RegisterHook); it has no effect on the segment
// itself.
func TryCreate(name string, track bool) (*Handle, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	path := pathOf(name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, segmentMode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrExists
		}
		return nil, fmt.Errorf("create segment %q: %w", name, err)
	}

	// The name is reserved from this point on. If sizing or mapping
	// fails the file must be unlinked again, otherwise the segment
	// would leak in a half-built state no other process can attach to.
	if err := unix.Ftruncate(int(file.Fd()), Size); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("size segment %q: %w", name, err)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("map segment %q: %w", name, err)
	}

	h := &Handle{name: name, file: file, data: data, owned: true, tracked: track}
	if track {
		notifyCreated(name)
	}
	return h, nil
}

// Open attaches to an existing segment read-only. It is used by observers
// (e.g. to read the holder token); the returned Handle must be released
// via Close, never Destroy.
func Open(name string) (*Handle, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	file, err := os.Open(pathOf(name))
	if err != nil {
		return nil, fmt.Errorf("open segment %q: %w", name, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat segment %q: %w", name, err)
	}
	if info.Size() < Size {
		// A zero-sized segment means its creator died between the
		// exclusive create and the truncate. It must be cleaned up
		// manually (or via Unlink).
		_ = file.Close()
		return nil, fmt.Errorf("segment %q is truncated (%d bytes), likely left by a crashed process", name, info.Size())
	}

	data, err := unix.Mmap(int(file.Fd()), 0, Size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("map segment %q: %w", name, err)
	}

	return &Handle{name: name, file: file, data: data}, nil
}

// Exists reports whether the named segment currently exists. Best effort:
// the answer may be stale by the time the caller acts on it, so it must
// never substitute for TryCreate.
func Exists(name string) bool {
	_, err := os.Stat(pathOf(name))
	return err == nil
}

// Unlink force-removes the named segment from the namespace without
// attaching to it. This is the leak-recovery escape hatch used by the
// resource tracker and the clean command; a live holder of the segment
// will observe os.ErrNotExist on its own Destroy afterwards.
func Unlink(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(pathOf(name)); err != nil {
		return fmt.Errorf("unlink segment %q: %w", name, err)
	}
	notifyDestroyed(name)
	return nil
}
