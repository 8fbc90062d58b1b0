package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// New creates the diagnostics logger. User-facing report lines go to
// stdout directly; diagnostics ([DEBUG]/[INFO]/[WARN] lines from the scan
// and cleanup stages) are discarded unless verbose is set, which sends
// them to stderr so the two streams stay separable in scripts.
func New(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", log.LstdFlags)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

// NewWithFile creates a logger that appends diagnostics to the given
// file. The file receives them regardless of verbose; stderr is mirrored
// in only when verbose is set. The file stays open for the life of the
// process.
func NewWithFile(path string, verbose bool) (*log.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	var w io.Writer = f
	if verbose {
		w = io.MultiWriter(os.Stderr, f)
	}
	return log.New(w, "", log.LstdFlags), nil
}
