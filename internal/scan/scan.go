package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// stdLogger wraps standard log.Logger to implement Logger interface
type stdLogger struct {
	*log.Logger
}

func (l *stdLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *stdLogger) Warn(msg string, args ...interface{}) {
	l.logWithLevel("WARN", msg, args...)
}

func (l *stdLogger) Debug(msg string, args ...interface{}) {
	l.logWithLevel("DEBUG", msg, args...)
}

func (l *stdLogger) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}

var (
	ErrRootNotFound = errors.New("root path does not exist")
	ErrRootNotDir   = errors.New("root path is not a directory")
	ErrNoTargets    = errors.New("no target names given")
)

// Match is one directory selected for removal.
type Match struct {
	Path string // absolute path
	Name string // basename that matched a target name
}

// Scanner walks a directory tree collecting directories whose basename
// equals one of the target names.
type Scanner struct {
	logger Logger
}

// NewScanner creates a new Scanner with the given logger
func NewScanner(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		logger: &stdLogger{Logger: logger},
	}
}

// Scan traverses root and returns matches in traversal order.
//
// The root itself is never a match. A matched directory is recorded and
// its subtree is skipped: it will be removed wholesale, so nested matches
// would only produce use-after-delete noise. Symlinked directories are
// reported by WalkDir as symlink entries and therefore neither matched
// nor followed. Unreadable subtrees are logged and skipped; only an
// unusable root fails the scan.
func (s *Scanner) Scan(root string, names []string) ([]Match, error) {
	if len(names) == 0 {
		return nil, ErrNoTargets
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, absRoot)
		}
		return nil, fmt.Errorf("stat root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, absRoot)
	}

	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}

	var matches []Match

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return fmt.Errorf("traverse root %s: %w", absRoot, err)
			}
			s.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() || path == absRoot {
			return nil
		}

		if nameSet[d.Name()] {
			matches = append(matches, Match{Path: path, Name: d.Name()})
			s.logger.Debug("Matched directory", "path", path)
			return filepath.SkipDir
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Scan complete", "root", absRoot, "matches", len(matches))
	return matches, nil
}
