// Package generator emits entity and resolver sources into an existing
// nebulis project and registers them in the matching aggregator files.
package generator

import "errors"

// Sentinel errors for the generator package.
var (
	// ErrNotInProject indicates the target directory has no backend/ directory.
	ErrNotInProject = errors.New("not in a nebulis project directory")

	// ErrInvalidName indicates a component name with no usable identifier characters.
	ErrInvalidName = errors.New("invalid component name")
)
