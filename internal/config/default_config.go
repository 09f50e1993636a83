package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/pelletier/go-toml/v2"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds the values used to render the default config
// template. All values come from the domain package.
type DefaultConfigValues struct {
	Workers       int
	FlagThreshold float64
	Format        string
	MinScore      float64
	MaxResults    int
	LogFilename   string
	LogLevel      string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	ServerAddr    string
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		Workers:       domain.DefaultWorkers,
		FlagThreshold: domain.DefaultFlagThreshold,
		Format:        string(domain.DefaultCompareFormat),
		MinScore:      domain.DefaultMatrixMinScore,
		MaxResults:    domain.DefaultMatrixMaxResults,
		LogFilename:   domain.DefaultLogFilename,
		LogLevel:      domain.DefaultLogLevel,
		LogMaxSizeMB:  domain.DefaultLogMaxSizeMB,
		LogMaxBackups: domain.DefaultLogMaxBackups,
		LogMaxAgeDays: domain.DefaultLogMaxAgeDays,
		ServerAddr:    domain.DefaultServerAddr,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := toml.Unmarshal([]byte(configTOML), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	return cfg, nil
}

// WriteDefaultConfig writes the default configuration file to path.
// An existing file is only replaced when force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	content, err := GenerateDefaultConfigTOML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
