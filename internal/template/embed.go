package template

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// Names of the generator templates.
const (
	EntityTemplate    = "entity.rs.tmpl"
	ResolverTemplate  = "resolver.rs.tmpl"
	MigrationTemplate = "migration.rs.tmpl"
)

// EmbeddedTemplates returns the project tree deployed by `nebulis new`.
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embedded, "templates/project")
}

// GeneratorTemplates returns the source templates used by the generators.
func GeneratorTemplates() (fs.FS, error) {
	return fs.Sub(embedded, "templates/generate")
}

// NewGeneratorRenderer returns a Renderer over GeneratorTemplates.
func NewGeneratorRenderer() (Renderer, error) {
	fsys, err := GeneratorTemplates()
	if err != nil {
		return nil, err
	}
	return NewRenderer(fsys), nil
}
