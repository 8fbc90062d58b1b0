package safety

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrProtectedPath = errors.New("protected path")
	ErrOutsideRoot   = errors.New("outside scan root")
	ErrTraversal     = errors.New("path traversal detected")
	ErrSymlinkEscape = errors.New("symlink escape detected")
)

// Validator enforces the safety contract for all delete operations.
// Every removal target must live under the scan root and stay clear of the
// protected system paths, even if the scanner somehow produced it.
type Validator struct {
	root      string
	protected []string
}

// NewValidator creates a validator scoped to the given scan root, with
// optional additional protected paths from configuration.
func NewValidator(root string, extraProtected []string) *Validator {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	return &Validator{
		root:      filepath.Clean(abs),
		protected: defaultProtected(extraProtected),
	}
}

// ValidateDeleteTarget is the single-source-of-truth for delete
// authorization. Returns a typed error on safety violation.
func (v *Validator) ValidateDeleteTarget(path string) error {
	p, err := normalizePath(path)
	if err != nil {
		return err
	}

	if isProtected(p, v.protected) {
		return ErrProtectedPath
	}

	if !hasPathPrefix(p, v.root) {
		return ErrOutsideRoot
	}

	if detectTraversal(path) {
		return ErrTraversal
	}

	escaped, err := detectSymlinkEscape(p, v.root)
	if err != nil {
		// Resolution fails for paths that no longer exist; the removal
		// itself will surface that, so let the attempt proceed.
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if escaped {
		return ErrSymlinkEscape
	}

	return nil
}

func normalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrInvalidPath
	}
	return filepath.Clean(abs), nil
}

// detectTraversal blocks any ".." segment in raw input
func detectTraversal(raw string) bool {
	parts := strings.Split(filepath.ToSlash(raw), "/")
	for _, p := range parts {
		if p == ".." {
			return true
		}
	}
	return false
}

// detectSymlinkEscape resolves symlinks and checks whether the resolved
// path leaves the scan root
func detectSymlinkEscape(cleanAbs, root string) (bool, error) {
	resolved, err := filepath.EvalSymlinks(cleanAbs)
	if err != nil {
		return false, err
	}
	resolvedAbs, err := filepath.Abs(resolved)
	if err != nil {
		return false, err
	}
	// The root itself may sit behind a symlink (macOS /tmp, for one), so
	// compare against the resolved root.
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = root
	}
	return !hasPathPrefix(filepath.Clean(resolvedAbs), filepath.Clean(resolvedRoot)), nil
}

func isProtected(path string, protected []string) bool {
	p := filepath.Clean(path)

	// Hard block: "/" exact
	if p == string(os.PathSeparator) {
		return true
	}

	for _, prot := range protected {
		prot = filepath.Clean(prot)
		if p == prot || hasPathPrefix(p, prot) {
			return true
		}
	}
	return false
}

// hasPathPrefix checks if path has the given prefix
func hasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)

	if prefix == string(os.PathSeparator) {
		return path == "/"
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(os.PathSeparator))
}

// defaultProtected returns the base set of protected paths plus any extras
func defaultProtected(extra []string) []string {
	base := []string{
		"/",
		"/etc",
		"/bin",
		"/usr",
		"/boot",
		"/lib",
		"/lib64",
		"/sbin",
	}
	return append(base, extra...)
}
