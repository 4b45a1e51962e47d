package config

import (
	"fmt"
	"sync"
)

// ConfigManager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type ConfigManager struct {
	mu     sync.RWMutex
	config *Config
	root   string
	loaded bool
}

// NewConfigManager creates a new ConfigManager instance in uninitialized state.
func NewConfigManager() *ConfigManager {
	return &ConfigManager{}
}

// Load reads nebulis.yaml from projectRoot, applies defaults and NEBULIS_*
// environment overrides, then validates. A missing file is not an error.
func (m *ConfigManager) Load(projectRoot string) (*Config, error) {
	cfg, loaded, err := LoadFile(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = cfg
	m.root = projectRoot
	m.loaded = loaded

	return cfg, nil
}

// Get returns the loaded configuration, or nil before Load.
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// FromFile reports whether the last Load read an actual file.
func (m *ConfigManager) FromFile() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Save writes the current configuration back to nebulis.yaml.
func (m *ConfigManager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return ErrNotInitialized
	}
	return SaveFile(m.root, m.config)
}
