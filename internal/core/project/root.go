package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nebulis-dev/nebulis/internal/defs"
)

// FindProjectRoot walks upward from start until it finds a directory
// containing the backend/ marker. An empty start means the working
// directory. The returned path is absolute.
func FindProjectRoot(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	origin := dir

	for {
		if IsProjectRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (no %s directory in %s or any parent)", ErrNotInProject, defs.BackendDir, origin)
		}
		dir = parent
	}
}

// FindProjectRootOrCurrent is like FindProjectRoot but falls back to start
// itself when no project is found. The generators then report the missing
// marker with their own error.
func FindProjectRootOrCurrent(start string) (string, error) {
	if root, err := FindProjectRoot(start); err == nil {
		return root, nil
	}
	if start == "" {
		start = "."
	}
	return filepath.Abs(start)
}

// IsProjectRoot reports whether dir contains the backend/ marker directory.
func IsProjectRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, defs.BackendDir))
	return err == nil && info.IsDir()
}
