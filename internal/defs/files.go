// Package defs holds the fixed names of the nebulis project layout shared by
// the scaffolder and the generators.
package defs

// Common file names used across the project.
const (
	// ConfigYAML is the optional project configuration file at the project root.
	ConfigYAML = "nebulis.yaml"

	// ModRS is the aggregator file name inside every generated module directory.
	ModRS = "mod.rs"

	// GitIgnore is the ignore file written at the project root.
	GitIgnore = ".gitignore"

	// EnvFile holds the backend environment variables.
	EnvFile = ".env"

	// ComposeYAML is the container orchestration file.
	ComposeYAML = "docker-compose.yml"

	// RustExt is the extension of generated backend sources.
	RustExt = ".rs"
)

// ModStub is the content of an empty aggregator written by the scaffolder.
const ModStub = "// Generated by Nebulis CLI\n"
