package scan

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func mkdirs(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Join(root, p), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", p, err)
		}
	}
}

func TestScanExactNameMatch(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"proj/bin",
		"proj/obj",
		"proj/src",
		"proj/binaries", // substring, must not match
		"proj/obj2",     // prefix, must not match
	)

	scanner := NewScanner(nil)
	matches, err := scanner.Scan(root, []string{"bin", "obj"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := map[string]bool{
		filepath.Join(root, "proj", "bin"): true,
		filepath.Join(root, "proj", "obj"): true,
	}
	if len(matches) != len(want) {
		t.Fatalf("Expected %d matches, got %d: %v", len(want), len(matches), matches)
	}
	for _, m := range matches {
		if !want[m.Path] {
			t.Errorf("Unexpected match: %s", m.Path)
		}
		if !filepath.IsAbs(m.Path) {
			t.Errorf("Match path not absolute: %s", m.Path)
		}
	}
}

func TestScanSkipsDescentIntoMatches(t *testing.T) {
	root := t.TempDir()
	// A matched directory containing another matching name one level down.
	// Skip-descent means only the outer directory is reported.
	mkdirs(t, root, "app/node_modules/dep/node_modules")

	scanner := NewScanner(nil)
	matches, err := scanner.Scan(root, []string{"node_modules"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d: %v", len(matches), matches)
	}
	wantPath := filepath.Join(root, "app", "node_modules")
	if matches[0].Path != wantPath {
		t.Errorf("Expected %s, got %s", wantPath, matches[0].Path)
	}
}

func TestScanRootItselfNeverMatches(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "bin")
	mkdirs(t, parent, "bin/sub")

	scanner := NewScanner(nil)
	matches, err := scanner.Scan(root, []string{"bin"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Root must not match itself, got %v", matches)
	}
}

func TestScanTraversalOrder(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/bin", "b/bin", "c/bin")

	scanner := NewScanner(nil)
	matches, err := scanner.Scan(root, []string{"bin"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
	// WalkDir visits lexically, so a < b < c.
	for i, parent := range []string{"a", "b", "c"} {
		want := filepath.Join(root, parent, "bin")
		if matches[i].Path != want {
			t.Errorf("Match %d: expected %s, got %s", i, want, matches[i].Path)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	scanner := NewScanner(nil)
	_, err := scanner.Scan(filepath.Join(t.TempDir(), "nope"), []string{"bin"})
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("Expected ErrRootNotFound, got %v", err)
	}
}

func TestScanRootNotADirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	scanner := NewScanner(nil)
	_, err := scanner.Scan(file, []string{"bin"})
	if !errors.Is(err, ErrRootNotDir) {
		t.Errorf("Expected ErrRootNotDir, got %v", err)
	}
}

func TestScanNoTargetNames(t *testing.T) {
	scanner := NewScanner(nil)
	_, err := scanner.Scan(t.TempDir(), nil)
	if !errors.Is(err, ErrNoTargets) {
		t.Errorf("Expected ErrNoTargets, got %v", err)
	}
}

func TestScanDoesNotFollowSymlinkedDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	root := t.TempDir()
	outside := t.TempDir()
	mkdirs(t, outside, "bin")

	// Symlink inside the tree pointing at a directory containing a match.
	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	scanner := NewScanner(nil)
	matches, err := scanner.Scan(root, []string{"bin"})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Symlinked tree must not be followed, got %v", matches)
	}
}
