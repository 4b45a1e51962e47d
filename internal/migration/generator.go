package migration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/modindex"
	"github.com/nebulis-dev/nebulis/internal/naming"
	"github.com/nebulis-dev/nebulis/internal/template"
)

// VersionLayout formats the wrapper version stamp (UTC, YYYYMMDDHHMMSS).
const VersionLayout = "20060102150405"

// DefaultSchemaExt is the schema file extension.
const DefaultSchemaExt = "surql"

// Result describes one generated migration. Paths are slash-separated and
// relative to the project root.
type Result struct {
	Name        string
	Version     string
	Operation   Operation
	Files       []string
	Aggregators []string
}

// Generator writes migration schema files and their backend wrapper.
type Generator struct {
	root      string
	renderer  template.Renderer
	reader    EntityReader
	now       func() time.Time
	schemaExt string
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for the version stamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithEntityReader replaces the file-based entity reader.
func WithEntityReader(r EntityReader) Option {
	return func(g *Generator) { g.reader = r }
}

// WithSchemaExt sets the schema file extension, without the dot.
func WithSchemaExt(ext string) Option {
	return func(g *Generator) {
		if ext = strings.TrimPrefix(ext, "."); ext != "" {
			g.schemaExt = ext
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a migration generator for the project at root.
// renderer must serve the generator templates.
func NewGenerator(root string, renderer template.Renderer, opts ...Option) *Generator {
	g := &Generator{
		root:      root,
		renderer:  renderer,
		now:       time.Now,
		schemaExt: DefaultSchemaExt,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.reader == nil {
		g.reader = NewEntityReader(root, g.logger)
	}
	return g
}

type wrapperView struct {
	Name     string
	Module   string
	Version  string
	UpPath   string
	DownPath string
}

// Generate infers the operation from name, writes the up and down schema
// files and the wrapper source, then registers the wrapper in
// backend/src/migrations/mod.rs. Files already written stay on disk when a
// later step fails.
func (g *Generator) Generate(ctx context.Context, name string) (*Result, error) {
	op, err := Infer(name)
	if err != nil {
		return nil, err
	}
	if ct, ok := op.(CreateTable); ok {
		ct.Columns = g.reader.Columns(ct.Table)
		op = ct
	}

	module := naming.Snake(name)
	version := g.now().UTC().Format(VersionLayout)
	upRel := path.Join(defs.SchemaDir, fmt.Sprintf("%s.up.%s", module, g.schemaExt))
	downRel := path.Join(defs.SchemaDir, fmt.Sprintf("%s.down.%s", module, g.schemaExt))
	wrapperRel := path.Join(defs.MigrationsDir, module+defs.RustExt)

	g.logger.Debug("migration inferred", "name", module, "operation", op.Kind(), "version", version)

	wrapper, err := g.renderer.Render(template.MigrationTemplate, wrapperView{
		Name:     naming.Pascal(module),
		Module:   module,
		Version:  version,
		UpPath:   upRel,
		DownPath: downRel,
	})
	if err != nil {
		return nil, fmt.Errorf("render migration %s: %w", module, err)
	}

	for _, dir := range []string{defs.SchemaDir, defs.MigrationsDir} {
		if err := os.MkdirAll(filepath.Join(g.root, dir), defs.DirPerm); err != nil {
			return nil, fmt.Errorf("create %s directory: %w", dir, err)
		}
	}

	result := &Result{Name: module, Version: version, Operation: op}
	files := []struct {
		rel, what string
		content   []byte
	}{
		{upRel, "up migration", []byte(op.Up() + "\n")},
		{downRel, "down migration", []byte(op.Down() + "\n")},
		{wrapperRel, "migration file", wrapper},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := filepath.Join(g.root, f.rel)
		if err := os.WriteFile(p, f.content, defs.FilePerm); err != nil {
			return nil, fmt.Errorf("write %s %s: %w", f.what, p, err)
		}
		result.Files = append(result.Files, f.rel)
	}

	modRel := path.Join(defs.MigrationsDir, defs.ModRS)
	added, err := modindex.Update(filepath.Join(g.root, modRel), modindex.ForAll(module))
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		result.Aggregators = append(result.Aggregators, modRel)
	}

	g.logger.Info("migration generated", "name", module, "operation", op.Kind())
	return result, nil
}
