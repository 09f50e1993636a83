package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated configuration file
const ConfigFileName = ".antiplag.toml"

// Source names where a configuration came from
type Source struct {
	Path string // empty when the defaults were used
	Kind string // "file", "antiplag.toml", "pyproject.toml" or "defaults"
}

// TomlConfigLoader discovers configuration with ruff-like priority
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// Load resolves the configuration for a run:
// 1. explicitPath, if given (any format viper reads)
// 2. .antiplag.toml, walking up from startDir
// 3. pyproject.toml with a [tool.antiplag] table, walking up from startDir
// 4. defaults
// Environment overrides are applied last in every case.
func (l *TomlConfigLoader) Load(explicitPath, startDir string) (*Config, Source, error) {
	if explicitPath != "" {
		cfg, err := LoadConfig(explicitPath)
		if err != nil {
			return nil, Source{}, err
		}
		return cfg, Source{Path: explicitPath, Kind: "file"}, nil
	}

	if startDir == "" {
		startDir = "."
	}
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		absDir = startDir
	}

	cfg := DefaultConfig()
	source := Source{Kind: "defaults"}

	if path, ok := findUpwards(absDir, ConfigFileName); ok {
		if err := l.decodeFile(path, cfg); err != nil {
			return nil, Source{}, err
		}
		source = Source{Path: path, Kind: "antiplag.toml"}
	} else if path, ok := findUpwards(absDir, "pyproject.toml"); ok {
		found, err := loadPyprojectSection(path, cfg)
		if err != nil {
			return nil, Source{}, err
		}
		if found {
			source = Source{Path: path, Kind: "pyproject.toml"}
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, Source{}, err
	}
	if err := cfg.Validate(); err != nil {
		where := source.Path
		if where == "" {
			where = "environment"
		}
		return nil, Source{}, fmt.Errorf("invalid configuration in %s: %w", where, err)
	}
	return cfg, source, nil
}

// decodeFile decodes a TOML file over cfg; keys absent from the file keep
// their current values.
func (l *TomlConfigLoader) decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// GetSupportedConfigFiles returns the file names searched during discovery
func (l *TomlConfigLoader) GetSupportedConfigFiles() []string {
	return []string{ConfigFileName, "pyproject.toml"}
}

// findUpwards walks up from dir looking for name
func findUpwards(dir, name string) (string, bool) {
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
