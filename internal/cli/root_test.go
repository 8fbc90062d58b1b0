package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"dirsweep/internal/config"
	"dirsweep/internal/exitcodes"
)

// resetFlags returns the package flag state to defaults between tests,
// since cobra keeps flag values across Execute calls.
func resetFlags() {
	configPath = ""
	targetNames = nil
	force = false
	dryRun = false
	strict = false
	historyPath = ""
	logFile = ""
	verbose = false
}

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"proj/bin", "proj/src"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", d, err)
		}
	}
	return root
}

func TestExecuteMissingTargetNames(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{t.TempDir()})

	if code := Execute(); code != exitcodes.InvalidInvocation {
		t.Errorf("Expected exit %d without --name, got %d", exitcodes.InvalidInvocation, code)
	}
}

func TestExecuteMissingRoot(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent"), "--name", "bin", "--force"})

	if code := Execute(); code != exitcodes.InvalidInvocation {
		t.Errorf("Expected exit %d for missing root, got %d", exitcodes.InvalidInvocation, code)
	}
}

func TestExecuteForceSweep(t *testing.T) {
	resetFlags()
	root := buildTree(t)
	rootCmd.SetArgs([]string{root, "--name", "bin", "--force"})

	if code := Execute(); code != exitcodes.Success {
		t.Fatalf("Expected exit %d, got %d", exitcodes.Success, code)
	}
	if _, err := os.Stat(filepath.Join(root, "proj", "bin")); !os.IsNotExist(err) {
		t.Error("bin should have been removed")
	}
	if _, err := os.Stat(filepath.Join(root, "proj", "src")); err != nil {
		t.Error("src must be untouched")
	}
}

func TestExecuteDryRunKeepsTree(t *testing.T) {
	resetFlags()
	root := buildTree(t)
	rootCmd.SetArgs([]string{root, "-n", "bin", "--dry-run"})

	if code := Execute(); code != exitcodes.Success {
		t.Fatalf("Expected exit %d, got %d", exitcodes.Success, code)
	}
	if _, err := os.Stat(filepath.Join(root, "proj", "bin")); err != nil {
		t.Error("Dry run must not remove bin")
	}
}

func TestExecuteNoMatchesExitsZero(t *testing.T) {
	resetFlags()
	root := buildTree(t)
	rootCmd.SetArgs([]string{root, "-n", "missing", "--force"})

	if code := Execute(); code != exitcodes.Success {
		t.Errorf("Expected exit %d for no matches, got %d", exitcodes.Success, code)
	}
}

func TestExecuteNamesFromConfig(t *testing.T) {
	resetFlags()
	root := buildTree(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("default_names:\n  - bin\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	rootCmd.SetArgs([]string{root, "--config", cfgPath, "--force"})

	if code := Execute(); code != exitcodes.Success {
		t.Fatalf("Expected exit %d, got %d", exitcodes.Success, code)
	}
	if _, err := os.Stat(filepath.Join(root, "proj", "bin")); !os.IsNotExist(err) {
		t.Error("bin should have been removed using config default names")
	}
}

func TestDiagnosticsGatedByVerboseFlag(t *testing.T) {
	resetFlags()

	flag := rootCmd.Flags().Lookup("verbose")
	if flag == nil {
		t.Fatal("Expected a --verbose flag on the root command")
	}
	if flag.Shorthand != "v" {
		t.Errorf("Expected -v shorthand, got %q", flag.Shorthand)
	}

	cfg := &config.Config{}

	logger, err := buildLogger(cfg)
	if err != nil {
		t.Fatalf("buildLogger failed: %v", err)
	}
	if logger.Writer() != io.Discard {
		t.Error("Diagnostics must be discarded without --verbose")
	}

	verbose = true
	logger, err = buildLogger(cfg)
	if err != nil {
		t.Fatalf("buildLogger failed: %v", err)
	}
	if logger.Writer() != os.Stderr {
		t.Error("Diagnostics must go to stderr with --verbose")
	}
}

func TestExecuteVerboseSweep(t *testing.T) {
	resetFlags()
	root := buildTree(t)
	rootCmd.SetArgs([]string{root, "-n", "bin", "--force", "-v"})

	if code := Execute(); code != exitcodes.Success {
		t.Fatalf("Expected exit %d, got %d", exitcodes.Success, code)
	}
	if _, err := os.Stat(filepath.Join(root, "proj", "bin")); !os.IsNotExist(err) {
		t.Error("bin should have been removed")
	}
}

func TestExecuteHistoryRecording(t *testing.T) {
	resetFlags()
	root := buildTree(t)
	dbPath := filepath.Join(t.TempDir(), "removals.db")

	rootCmd.SetArgs([]string{root, "-n", "bin", "--force", "--history-db", dbPath})

	if code := Execute(); code != exitcodes.Success {
		t.Fatalf("Expected exit %d, got %d", exitcodes.Success, code)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Expected history database to be created: %v", err)
	}
}
