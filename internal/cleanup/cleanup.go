package cleanup

import (
	"fmt"
	"io"
	"log"
	"os"

	"dirsweep/internal/fsops"
	"dirsweep/internal/history"
	"dirsweep/internal/metrics"
	"dirsweep/internal/safety"
	"dirsweep/internal/scan"
)

// CleanupLogger interface for structured logging in cleanup
type CleanupLogger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// cleanupStdLogger wraps standard log.Logger to implement CleanupLogger interface
type cleanupStdLogger struct {
	*log.Logger
}

func (l *cleanupStdLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *cleanupStdLogger) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

func (l *cleanupStdLogger) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}

// Result accumulates the outcome of one delete stage.
type Result struct {
	Removed    int   // successful removals, simulated ones included in dry-run
	Failed     int   // removals that errored or were blocked; never aborts the batch
	BytesFreed int64 // sum of sizes of processed matches, when sizes are known
}

// Cleaner removes matched directories with per-item error recovery.
type Cleaner struct {
	logger    CleanupLogger
	out       io.Writer
	deleter   fsops.Deleter
	validator *safety.Validator
	db        *history.DB // optional removal log
	dryRun    bool
}

// NewCleaner creates a Cleaner. Report lines for the user are written to
// out; pass nil for stdout. db may be nil to disable history recording.
func NewCleaner(logger *log.Logger, out io.Writer, dryRun bool, db *history.DB) *Cleaner {
	if logger == nil {
		logger = log.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	metrics.Init() // counters must exist before Run touches them
	return &Cleaner{
		logger:  &cleanupStdLogger{Logger: logger},
		out:     out,
		deleter: fsops.OSDeleter{},
		db:      db,
		dryRun:  dryRun,
	}
}

// SetDeleter swaps the filesystem backend, used by tests to prove the
// dry-run contract.
func (c *Cleaner) SetDeleter(d fsops.Deleter) {
	c.deleter = d
}

// SetValidator installs the safety validator checked before every removal.
func (c *Cleaner) SetValidator(v *safety.Validator) {
	c.validator = v
}

// Run processes every match in order. sizes maps match path to its tree
// size and may be nil when sizing was unavailable. A failing entry is
// reported, counted, and the batch continues.
func (c *Cleaner) Run(matches []scan.Match, sizes map[string]int64) Result {
	var res Result

	for _, m := range matches {
		size := sizes[m.Path]

		if c.validator != nil {
			if err := c.validator.ValidateDeleteTarget(m.Path); err != nil {
				fmt.Fprintf(c.out, "Skipped %s: %v\n", m.Path, err)
				c.logger.Error("Blocked removal", "path", m.Path, "error", err)
				c.record(history.ActionSkip, m.Path, size, err.Error())
				metrics.RemovalErrorsTotal.Inc()
				res.Failed++
				continue
			}
		}

		if c.dryRun {
			fmt.Fprintf(c.out, "[DRY RUN] Would remove %s\n", m.Path)
			c.record(history.ActionDryRun, m.Path, size, "")
			metrics.FoldersRemovedTotal.Inc()
			res.Removed++
			res.BytesFreed += size
			continue
		}

		if err := c.deleter.RemoveAll(m.Path); err != nil {
			fmt.Fprintf(c.out, "Failed to remove %s: %v\n", m.Path, err)
			c.logger.Error("Failed to remove", "path", m.Path, "error", err)
			c.record(history.ActionError, m.Path, size, err.Error())
			metrics.RemovalErrorsTotal.Inc()
			res.Failed++
			continue
		}

		fmt.Fprintf(c.out, "Removed %s\n", m.Path)
		c.record(history.ActionRemove, m.Path, size, "")
		metrics.FoldersRemovedTotal.Inc()
		metrics.BytesFreedTotal.Add(float64(size))
		res.Removed++
		res.BytesFreed += size
	}

	c.logger.Info("Cleanup complete",
		"removed", res.Removed,
		"failed", res.Failed,
		"bytes_freed", res.BytesFreed,
	)

	return res
}

// record writes to the removal log, which must never fail the sweep.
func (c *Cleaner) record(action, path string, size int64, errMsg string) {
	if c.db == nil {
		return
	}
	if err := c.db.RecordRemoval(action, path, size, errMsg); err != nil {
		c.logger.Error("Failed to record removal", "error", err)
	}
}
