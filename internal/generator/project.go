package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/naming"
)

// Result lists what a generator wrote, as slash-separated paths relative to
// the project root.
type Result struct {
	Files       []string // primary artifacts
	Aggregators []string // aggregator files that gained a declaration
}

// RequireProject fails with ErrNotInProject unless root contains the
// backend/ marker directory.
func RequireProject(root string) error {
	info, err := os.Stat(filepath.Join(root, defs.BackendDir))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w (no %s/ directory in %s)", ErrNotInProject, defs.BackendDir, root)
	}
	return nil
}

// componentNames derives the type and module identifiers for name.
func componentNames(name string) (pascal, module string, err error) {
	module = naming.Snake(name)
	if module == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return naming.Pascal(name), module, nil
}

// writeSource writes content to rel under root, creating parent directories.
func writeSource(root, rel string, content []byte) error {
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
