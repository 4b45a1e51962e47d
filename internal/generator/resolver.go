package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/nebulis-dev/nebulis/internal/defs"
	"github.com/nebulis-dev/nebulis/internal/modindex"
	"github.com/nebulis-dev/nebulis/internal/template"
)

// Resolvers generates GraphQL resolver stubs under backend/src/graphql/resolvers.
type Resolvers struct {
	root     string
	renderer template.Renderer
	logger   *slog.Logger
}

// NewResolvers creates a resolver generator for the project at root.
func NewResolvers(root string, renderer template.Renderer, logger *slog.Logger) *Resolvers {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolvers{root: root, renderer: renderer, logger: logger}
}

type resolverView struct {
	Name   string
	Module string
}

// Generate writes the get/list/create/update/delete resolver for name and
// registers it in the resolvers aggregator.
func (g *Resolvers) Generate(ctx context.Context, name string) (*Result, error) {
	if err := RequireProject(g.root); err != nil {
		return nil, err
	}

	pascal, module, err := componentNames(name)
	if err != nil {
		return nil, err
	}

	content, err := g.renderer.Render(template.ResolverTemplate, resolverView{Name: pascal, Module: module})
	if err != nil {
		return nil, fmt.Errorf("render resolver %s: %w", pascal, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel := path.Join(defs.ResolversDir, module+defs.RustExt)
	if err := writeSource(g.root, rel, content); err != nil {
		return nil, fmt.Errorf("write resolver file: %w", err)
	}
	result := &Result{Files: []string{rel}}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	modRel := path.Join(defs.ResolversDir, defs.ModRS)
	added, err := modindex.Update(filepath.Join(g.root, modRel), modindex.ForAll(module))
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		result.Aggregators = append(result.Aggregators, modRel)
	}

	g.logger.Info("resolver generated", "resolver", pascal, "path", rel)
	return result, nil
}
