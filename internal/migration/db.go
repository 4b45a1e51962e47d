package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nebulis-dev/nebulis/internal/defs"
)

// List returns the migration modules in backend/src/migrations, sorted,
// without the .rs extension. The aggregator itself is excluded.
func List(root string) ([]string, error) {
	dir, err := migrationsDir(root)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == defs.ModRS || !strings.HasSuffix(name, defs.RustExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, defs.RustExt))
	}
	slices.Sort(names)
	return names, nil
}

// Migrate checks that the migrations directory exists. Migrations are
// applied by the generated backend, not by this tool.
func Migrate(root string) error {
	_, err := migrationsDir(root)
	return err
}

// Rollback checks steps and the migrations directory. Like Migrate it does
// not touch a database.
func Rollback(root string, steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	_, err := migrationsDir(root)
	return err
}

func migrationsDir(root string) (string, error) {
	dir := filepath.Join(root, defs.MigrationsDir)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return "", ErrNoMigrationsDir
	}
	if err != nil {
		return "", fmt.Errorf("stat migrations directory: %w", err)
	}
	return dir, nil
}
