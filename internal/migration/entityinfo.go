package migration

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/naming"
)

// EntityReader recovers the columns of a previously generated entity.
// Implementations never fail: an unreadable or unmatched entity yields nil.
type EntityReader interface {
	Columns(table string) []Column
}

// validatedFieldPattern matches a #[validate(...)] attribute followed by the
// next `pub <name>: <Type>` declaration. Fields without an attribute are not
// recovered.
var validatedFieldPattern = regexp.MustCompile(`(?s)#\[validate\((.*?)\)\].*?pub\s+(\w+)\s*:\s*(\w+)`)

var systemFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"deleted_at": true,
}

type fileEntityReader struct {
	root   string
	logger *slog.Logger
}

// NewEntityReader reads entity sources from backend/src/entities under root.
// The entity file for a table is <Singular(table)>.rs.
func NewEntityReader(root string, logger *slog.Logger) EntityReader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &fileEntityReader{root: root, logger: logger}
}

func (r *fileEntityReader) Columns(table string) []Column {
	path := filepath.Join(r.root, defs.EntitiesDir, naming.Singular(table)+defs.RustExt)
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Debug("entity not readable, creating table without entity fields",
			"table", table, "path", path, "error", err)
		return nil
	}

	cols := ParseEntityColumns(string(data))
	if len(cols) == 0 {
		r.logger.Debug("no validated fields found in entity", "table", table, "path", path)
	}
	return cols
}

// ParseEntityColumns extracts validated field declarations from entity
// source, skipping system fields. Repeated names are kept; CreateTable
// dedupes them.
func ParseEntityColumns(src string) []Column {
	var cols []Column
	for _, m := range validatedFieldPattern.FindAllStringSubmatch(src, -1) {
		name, typ := m[2], m[3]
		if systemFields[name] {
			continue
		}
		cols = append(cols, Column{Name: name, Type: typ})
	}
	return cols
}
