package segment

import (
	"strings"
	"sync"

	"github.com/shmlock/shmlock/lib/logging"
)

// --------------------------------------------------------------------------
// Lifecycle Hooks
// --------------------------------------------------------------------------

// Hook receives segment lifecycle events. Hooks are invoked synchronously
// from TryCreate, Destroy and Unlink, in the process that performed the
// operation; they must be fast and must not call back into this package.
type Hook interface {
	// SegmentCreated is called after the named segment has been created
	// and mapped.
	SegmentCreated(name string)
	// SegmentDestroyed is called after the named segment has been
	// unlinked from the namespace.
	SegmentDestroyed(name string)
}

var hookReg = struct {
	sync.RWMutex
	hooks []Hook

	// suppression filter, see Suppress
	suppressed      bool
	suppressPattern string
}{}

// RegisterHook adds a lifecycle hook. Registering the same hook twice
// is a no-op.
func RegisterHook(h Hook) {
	hookReg.Lock()
	defer hookReg.Unlock()
	for _, existing := range hookReg.hooks {
		if existing == h {
			return
		}
	}
	hookReg.hooks = append(hookReg.hooks, h)
}

// UnregisterHook removes a previously registered hook. Unknown hooks
// are ignored.
func UnregisterHook(h Hook) {
	hookReg.Lock()
	defer hookReg.Unlock()
	for i, existing := range hookReg.hooks {
		if existing == h {
			hookReg.hooks = append(hookReg.hooks[:i], hookReg.hooks[i+1:]...)
			return
		}
	}
}

// --------------------------------------------------------------------------
// Suppression
// --------------------------------------------------------------------------

// Suppress installs a process-local filter that drops lifecycle events
// for every segment whose name contains pattern. An empty pattern
// suppresses all events. The filter has no cross-process effect: every
// process that creates matching segments must install it independently.
//
// This mirrors disabling a platform's native shared-memory tracking for
// segments that are known to be managed correctly, eliminating spurious
// leak reports for them.
//
// When verbose is true an empty pattern is announced on the segment
// logger, since it silences leak detection for the whole process.
func Suppress(pattern string, verbose bool) {
	if verbose && pattern == "" {
		logging.New("segment").Warningf(
			"suppressing lifecycle events for all segments; leak detection is disabled in this process")
	}
	hookReg.Lock()
	defer hookReg.Unlock()
	hookReg.suppressed = true
	hookReg.suppressPattern = pattern
}

// Unsuppress removes the suppression filter installed by Suppress.
func Unsuppress() {
	hookReg.Lock()
	defer hookReg.Unlock()
	hookReg.suppressed = false
	hookReg.suppressPattern = ""
}

// Suppressed reports whether lifecycle events for the given name are
// currently filtered out.
func Suppressed(name string) bool {
	hookReg.RLock()
	defer hookReg.RUnlock()
	return hookReg.suppressed && strings.Contains(name, hookReg.suppressPattern)
}

// --------------------------------------------------------------------------
// Notification (internal)
// --------------------------------------------------------------------------

// snapshot returns the hooks to notify for name, or nil if the event
// is suppressed.
func snapshot(name string) []Hook {
	hookReg.RLock()
	defer hookReg.RUnlock()
	if hookReg.suppressed && strings.Contains(name, hookReg.suppressPattern) {
		return nil
	}
	hooks := make([]Hook, len(hookReg.hooks))
	copy(hooks, hookReg.hooks)
	return hooks
}

func notifyCreated(name string) {
	for _, h := range snapshot(name) {
		h.SegmentCreated(name)
	}
}

func notifyDestroyed(name string) {
	for _, h := range snapshot(name) {
		h.SegmentDestroyed(name)
	}
}
