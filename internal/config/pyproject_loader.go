package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// loadPyprojectSection decodes the [tool.antiplag] table of a pyproject.toml
// over cfg. It reports whether the table was present.
func loadPyprojectSection(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pyproject struct {
		Tool map[string]interface{} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	section, ok := pyproject.Tool["antiplag"]
	if !ok {
		return false, nil
	}

	// Round-trip the table so it decodes with the same rules as .antiplag.toml
	raw, err := toml.Marshal(section)
	if err != nil {
		return false, fmt.Errorf("failed to read [tool.antiplag] in %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return false, fmt.Errorf("failed to parse [tool.antiplag] in %s: %w", path, err)
	}
	return true, nil
}
