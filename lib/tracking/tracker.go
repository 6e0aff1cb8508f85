package tracking

import (
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/shmlock/shmlock/lib/logging"
	"github.com/shmlock/shmlock/lib/segment"
)

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// Record is the metadata kept for every open segment.
type Record struct {
	CreatedAt time.Time
	PID       int
}

// tracker implements segment.Hook. While registered it records every
// create and destroy event that passes the suppression filter.
type tracker struct {
	logger   logging.ILogger
	segments *xsync.MapOf[string, Record]
}

func (t *tracker) SegmentCreated(name string) {
	rec := Record{CreatedAt: time.Now(), PID: os.Getpid()}
	if _, loaded := t.segments.LoadOrStore(name, rec); loaded {
		t.logger.Warningf("segment %q is already tracked; a previous destroy event was missed", name)
		t.segments.Store(name, rec)
	}
	t.logger.Debugf("tracking segment %q", name)
}

func (t *tracker) SegmentDestroyed(name string) {
	if _, loaded := t.segments.LoadAndDelete(name); !loaded {
		// Happens when tracking was initialized after the segment had
		// already been created.
		t.logger.Warningf("segment %q was destroyed but never tracked", name)
		return
	}
	t.logger.Debugf("untracking segment %q", name)
}

// --------------------------------------------------------------------------
// Process-Wide Lifecycle
// --------------------------------------------------------------------------

var (
	mu     sync.Mutex
	active *tracker
)

// Init installs the process-wide resource tracker. From this point on
// every tracked segment create/destroy is recorded, so Deinit can report
// (and recover) segments that were never destroyed. Calling Init twice
// is a warned no-op; the existing registry is never discarded.
func Init(logger logging.ILogger) {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		active.logger.Warningf("resource tracking is already initialized, ignoring repeated Init")
		return
	}
	active = &tracker{
		logger:   logging.OrNop(logger),
		segments: xsync.NewMapOf[string, Record](),
	}
	segment.RegisterHook(active)
	active.logger.Infof("custom resource tracking initialized")
}

// Initialized reports whether the tracker is currently installed.
func Initialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return active != nil
}

// Tracked returns the names of all segments currently recorded as open,
// sorted. Returns nil when the tracker is not initialized.
func Tracked() []string {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return nil
	}
	var names []string
	active.segments.Range(func(name string, _ Record) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Deinit tears the tracker down, reports every segment still recorded as
// open as a leak, and force-destroys the leaked segments so their names
// become acquirable again. The leaked names are returned, sorted.
// Deinit without a prior Init is a no-op.
func Deinit() []string {
	return deinit(true)
}

// DeinitReportOnly tears the tracker down and reports leaks without
// taking any destructive action. For diagnostic-only use, e.g. when a
// surviving lock instance may still hold one of the segments.
func DeinitReportOnly() []string {
	return deinit(false)
}

func deinit(cleanUp bool) []string {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return nil
	}
	t := active
	active = nil
	segment.UnregisterHook(t)

	type leak struct {
		name string
		rec  Record
	}
	var leaks []leak
	t.segments.Range(func(name string, rec Record) bool {
		leaks = append(leaks, leak{name, rec})
		return true
	})
	sort.Slice(leaks, func(i, j int) bool { return leaks[i].name < leaks[j].name })

	names := make([]string, 0, len(leaks))
	for _, l := range leaks {
		names = append(names, l.name)
		t.logger.Warningf("segment %q (created %s by pid %d) was never destroyed",
			l.name, l.rec.CreatedAt.Format(time.RFC3339), l.rec.PID)
		if !cleanUp {
			continue
		}
		if err := segment.Unlink(l.name); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.logger.Errorf("could not clean up leaked segment %q: %v", l.name, err)
		} else {
			t.logger.Warningf("cleaned up leaked segment %q", l.name)
		}
	}
	if len(leaks) == 0 {
		t.logger.Infof("custom resource tracking deinitialized, no leaks")
	}
	return names
}
