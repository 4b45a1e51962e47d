package config

// Config is the content of nebulis.yaml.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Schema  SchemaConfig  `yaml:"schema"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// ProjectConfig identifies the project. It is written once by `nebulis new`.
type ProjectConfig struct {
	Name           string `yaml:"name"`
	CreatedAt      string `yaml:"created_at,omitempty"`
	NebulisVersion string `yaml:"nebulis_version,omitempty"`
}

// SchemaConfig controls the migration schema files.
type SchemaConfig struct {
	// Extension of the up/down schema files, without the dot.
	Extension string `yaml:"extension"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	NoColor bool `yaml:"no_color"`
}
