// Package template renders the embedded nebulis templates: the static project
// tree deployed by `nebulis new` and the source templates used by the
// entity, resolver and migration generators.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the named template does not exist in the FS.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates template execution referenced a missing key.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates rendered output still contains a placeholder token.
	ErrUnexpandedToken = errors.New("template: unexpanded token in output")

	// ErrPathTraversal indicates a template path escapes the project root.
	ErrPathTraversal = errors.New("template: path traversal detected")
)
