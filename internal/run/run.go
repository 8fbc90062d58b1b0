package run

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"dirsweep/internal/cleanup"
	"dirsweep/internal/confirm"
	"dirsweep/internal/disk"
	"dirsweep/internal/fsops"
	"dirsweep/internal/history"
	"dirsweep/internal/metrics"
	"dirsweep/internal/safety"
	"dirsweep/internal/scan"
)

// Options describe one sweep.
type Options struct {
	Root           string   // scan root, resolved to absolute before use
	Names          []string // target directory basenames
	Force          bool     // skip confirmation
	DryRun         bool     // simulate removals, never prompt
	ProtectedPaths []string // extra paths the validator must refuse
}

// Deps carry the injectable edges of the pipeline. Zero values select the
// real environment (stdin, stdout, the os deleter, no history log).
type Deps struct {
	Logger  *log.Logger
	In      io.Reader
	Out     io.Writer
	Deleter fsops.Deleter
	DB      *history.DB
}

// Summary is the outcome the CLI maps to an exit code.
type Summary struct {
	Matches    int
	Removed    int
	Failed     int
	BytesFreed int64
	Cancelled  bool
	DryRun     bool
}

// Sweep runs the pipeline once: scan, report, size, confirm, delete,
// summarize. Early clean exits happen on an empty match list and on a
// declined confirmation; both return a Summary and a nil error.
func Sweep(ctx context.Context, opts Options, deps Deps) (*Summary, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Deleter == nil {
		deps.Deleter = fsops.OSDeleter{}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	metrics.Init()
	start := time.Now()

	// Scan
	scanner := scan.NewScanner(deps.Logger)
	matches, err := scanner.Scan(opts.Root, opts.Names)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Matches: len(matches), DryRun: opts.DryRun}

	if len(matches) == 0 {
		fmt.Fprintln(deps.Out, "No matching folders found.")
		return summary, nil
	}

	// Report
	for _, m := range matches {
		fmt.Fprintf(deps.Out, "Found: %s\n", m.Path)
	}

	// Size
	sizes := make(map[string]int64, len(matches))
	var total int64
	anyKnown := false
	for _, m := range matches {
		bytes, known := disk.TreeSize(m.Path)
		if known {
			anyKnown = true
			sizes[m.Path] = bytes
			total += bytes
		}
	}
	sizeText := "unavailable"
	if anyKnown {
		sizeText = disk.FormatSize(total)
	}
	fmt.Fprintf(deps.Out, "Total size: %s\n", sizeText)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Confirm
	if !opts.DryRun && !opts.Force {
		confirmer := confirm.New(deps.In, deps.Out)
		if !confirmer.Confirm(len(matches), sizeText) {
			fmt.Fprintln(deps.Out, "Cancelled. No folders were removed.")
			summary.Cancelled = true
			return summary, nil
		}
	}

	// Delete
	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", opts.Root, err)
	}

	cleaner := cleanup.NewCleaner(deps.Logger, deps.Out, opts.DryRun, deps.DB)
	cleaner.SetDeleter(deps.Deleter)
	cleaner.SetValidator(safety.NewValidator(absRoot, opts.ProtectedPaths))

	res := cleaner.Run(matches, sizes)
	summary.Removed = res.Removed
	summary.Failed = res.Failed
	summary.BytesFreed = res.BytesFreed

	metrics.SweepDuration.Observe(time.Since(start).Seconds())

	// Summarize
	if opts.DryRun {
		fmt.Fprintf(deps.Out, "Would have removed %d folder(s).\n", summary.Removed)
	} else {
		fmt.Fprintf(deps.Out, "Removed %d folder(s), freed %s.\n",
			summary.Removed, disk.FormatSize(summary.BytesFreed))
		if summary.Failed > 0 {
			fmt.Fprintf(deps.Out, "%d removal(s) failed.\n", summary.Failed)
		}
	}

	deps.Logger.Printf("sweep complete: matches=%d removed=%d failed=%d freed=%d bytes duration=%.3fs",
		summary.Matches, summary.Removed, summary.Failed, summary.BytesFreed, time.Since(start).Seconds())

	return summary, nil
}
