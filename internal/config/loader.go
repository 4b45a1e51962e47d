package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nebulis-dev/nebulis/internal/defs"
)

// LoadFile reads nebulis.yaml from projectRoot. A missing file yields the
// defaults and loaded=false. Overrides and validation are not applied.
func LoadFile(projectRoot string) (cfg *Config, loaded bool, err error) {
	path := filepath.Join(filepath.Clean(projectRoot), defs.ConfigYAML)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDefaultConfig(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", defs.ConfigYAML, err)
	}

	cfg = &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w: %v", defs.ConfigYAML, ErrInvalidYAML, err)
	}
	applyDefaults(cfg)
	return cfg, true, nil
}

// SaveFile writes cfg to projectRoot/nebulis.yaml.
func SaveFile(projectRoot string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(filepath.Clean(projectRoot), defs.ConfigYAML)
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", defs.ConfigYAML, err)
	}
	return nil
}
