// Package modindex maintains aggregator files (mod.rs) that declare and
// re-export generated modules. Aggregators are append-only: membership is
// recomputed by scanning the current text and existing lines are never
// removed or reordered.
package modindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Declaration is one module entry of an aggregator.
type Declaration struct {
	// Module is the declared module name.
	Module string
	// Export is the path re-exported from the module, e.g. "Post" or "*".
	Export string
}

// ForType declares module and re-exports the named type from it.
func ForType(module, typeName string) Declaration {
	return Declaration{Module: module, Export: typeName}
}

// ForAll declares module and re-exports everything from it.
func ForAll(module string) Declaration {
	return Declaration{Module: module, Export: "*"}
}

// ModLine returns the declaration line, e.g. "pub mod post;".
func (d Declaration) ModLine() string {
	return "pub mod " + d.Module + ";"
}

// UseLine returns the re-export line, e.g. "pub use post::Post;".
func (d Declaration) UseLine() string {
	return "pub use " + d.Module + "::" + d.Export + ";"
}

// Contains reports whether content already declares d.Module.
func Contains(content string, d Declaration) bool {
	return strings.Contains(content, d.ModLine())
}

// Append returns content with d appended, and whether anything changed.
// When content already declares the module it is returned unchanged.
func Append(content string, d Declaration) (string, bool) {
	if Contains(content, d) {
		return content, false
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(d.ModLine())
	b.WriteByte('\n')
	b.WriteString(d.UseLine())
	b.WriteByte('\n')
	return b.String(), true
}

// Update applies Append for each declaration to the aggregator at path.
// A missing file is treated as empty. The file is only written when at
// least one declaration was added. It reports the declarations added.
func Update(path string, decls ...Declaration) ([]Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read aggregator %s: %w", path, err)
	}

	content := string(data)
	var added []Declaration
	for _, d := range decls {
		var changed bool
		content, changed = Append(content, d)
		if changed {
			added = append(added, d)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create aggregator directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("update aggregator %s: %w", path, err)
	}
	return added, nil
}
