package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"text/template"

	"github.com/nebulis-dev/nebulis/internal/naming"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	"pascal": naming.Pascal,
	"snake":  naming.Snake,
	"plural": naming.Plural,
}

// unexpandedTokenPattern detects leftover placeholder tokens in rendered output.
// Matches ${VAR}, {{VAR}}, {{.Var}} and $VAR. SurrealQL parameters such as
// $before are lowercase and pass.
var unexpandedTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\{\{\.?[A-Za-z_][A-Za-z0-9_.]*\}\}|\$[A-Z_][A-Z0-9_]*`)

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the FS and executes it with
	// data. Returns ErrMissingTemplateKey if a key is missing and
	// ErrUnexpandedToken if tokens remain after rendering.
	Render(templateName string, data any) ([]byte, error)
}

type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q in %s", ErrUnexpandedToken, string(loc), templateName)
	}

	return result, nil
}
