package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/dsl"
	"github.com/nebulis-dev/nebulis/internal/modindex"
	"github.com/nebulis-dev/nebulis/internal/naming"
	"github.com/nebulis-dev/nebulis/internal/template"
)

// Entities generates entity sources under backend/src/entities.
type Entities struct {
	root     string
	renderer template.Renderer
	logger   *slog.Logger
}

// NewEntities creates an entity generator for the project at root.
// renderer must serve the generator templates.
func NewEntities(root string, renderer template.Renderer, logger *slog.Logger) *Entities {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Entities{root: root, renderer: renderer, logger: logger}
}

// Generate parses groups, writes backend/src/entities/<module>.rs and
// registers the entity in the entities and GraphQL type aggregators. Relation
// targets are registered in the entities aggregator when missing.
func (g *Entities) Generate(ctx context.Context, name string, groups []string) (*Result, error) {
	if err := RequireProject(g.root); err != nil {
		return nil, err
	}

	pascal, module, err := componentNames(name)
	if err != nil {
		return nil, err
	}

	def, err := dsl.Parse(groups)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("parsed entity definition",
		"entity", pascal,
		"fields", len(def.Fields),
		"relations", len(def.Relations),
	)
	for _, r := range def.Relations {
		g.logger.Debug("entity relation", "entity", pascal, "kind", r.Keyword(), "target", r.Target())
	}

	content, err := g.Render(pascal, def)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel := path.Join(defs.EntitiesDir, module+defs.RustExt)
	if err := writeSource(g.root, rel, content); err != nil {
		return nil, fmt.Errorf("write entity file: %w", err)
	}
	result := &Result{Files: []string{rel}}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decls := []modindex.Declaration{modindex.ForType(module, pascal)}
	for _, r := range def.Relations {
		decls = append(decls, modindex.ForType(naming.Snake(r.Target()), r.Target()))
	}
	if err := g.register(result, defs.EntitiesDir, decls...); err != nil {
		return nil, err
	}
	if err := g.register(result, defs.GraphQLTypesDir, modindex.ForAll(module)); err != nil {
		return nil, err
	}

	g.logger.Info("entity generated", "entity", pascal, "path", rel)
	return result, nil
}

// Render produces the entity source for an already parsed definition.
func (g *Entities) Render(pascal string, def *dsl.Definition) ([]byte, error) {
	content, err := g.renderer.Render(template.EntityTemplate, newEntityView(pascal, def))
	if err != nil {
		return nil, fmt.Errorf("render entity %s: %w", pascal, err)
	}
	return content, nil
}

func (g *Entities) register(result *Result, dir string, decls ...modindex.Declaration) error {
	rel := path.Join(dir, defs.ModRS)
	added, err := modindex.Update(filepath.Join(g.root, rel), decls...)
	if err != nil {
		return err
	}
	if len(added) > 0 {
		result.Aggregators = append(result.Aggregators, rel)
		g.logger.Debug("aggregator updated", "path", rel, "added", len(added))
	}
	return nil
}
