package shmlock

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Per-Lock Metrics
// --------------------------------------------------------------------------

// lockMetrics exposes acquisition behavior per lock name through the
// process-wide metrics set. The contended counter counts failed create
// attempts, so under a long wait it grows once per poll iteration.
type lockMetrics struct {
	acquires  *metrics.Counter
	contended *metrics.Counter
	timeouts  *metrics.Counter
	releases  *metrics.Counter
	holdTime  *metrics.Histogram
}

func newLockMetrics(name string) *lockMetrics {
	return &lockMetrics{
		acquires:  metrics.GetOrCreateCounter(fmt.Sprintf(`shmlock_acquires_total{name=%q}`, name)),
		contended: metrics.GetOrCreateCounter(fmt.Sprintf(`shmlock_contended_total{name=%q}`, name)),
		timeouts:  metrics.GetOrCreateCounter(fmt.Sprintf(`shmlock_timeouts_total{name=%q}`, name)),
		releases:  metrics.GetOrCreateCounter(fmt.Sprintf(`shmlock_releases_total{name=%q}`, name)),
		holdTime:  metrics.GetOrCreateHistogram(fmt.Sprintf(`shmlock_hold_duration_seconds{name=%q}`, name)),
	}
}
