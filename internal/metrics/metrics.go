package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	initOnce sync.Once

	// FoldersRemovedTotal counts directories removed (or simulated in dry-run)
	FoldersRemovedTotal prometheus.Counter

	// RemovalErrorsTotal counts per-directory removal failures
	RemovalErrorsTotal prometheus.Counter

	// BytesFreedTotal tracks total bytes freed across sweeps
	BytesFreedTotal prometheus.Counter

	// SweepDuration tracks how long full sweeps take
	SweepDuration prometheus.Histogram
)

// DurationBuckets: 100ms to 5min for sweep durations
var DurationBuckets = []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300}

// Init initializes and registers all sweep metrics.
// Safe to call multiple times (uses sync.Once).
func Init() {
	initOnce.Do(func() {
		FoldersRemovedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dirsweep_folders_removed_total",
			Help: "Total number of matched directories removed by dirsweep.",
		})
		RemovalErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dirsweep_removal_errors_total",
			Help: "Total number of directory removals that failed.",
		})
		BytesFreedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dirsweep_bytes_freed_total",
			Help: "Total bytes freed by dirsweep.",
		})
		SweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dirsweep_sweep_duration_seconds",
			Help:    "Duration of sweep runs in seconds.",
			Buckets: DurationBuckets,
		})

		prometheus.MustRegister(
			FoldersRemovedTotal,
			RemovalErrorsTotal,
			BytesFreedTotal,
			SweepDuration,
		)
	})
}
