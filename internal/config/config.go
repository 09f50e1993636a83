package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// EnvPrefix is the prefix of environment overrides, e.g. ANTIPLAG_COMPARE_WORKERS
const EnvPrefix = "ANTIPLAG"

// Config represents the main configuration structure
type Config struct {
	// Compare holds batch comparison settings
	Compare CompareConfig `mapstructure:"compare" toml:"compare"`

	// Input holds file collection settings for matrix runs
	Input InputConfig `mapstructure:"input" toml:"input"`

	// Output holds report settings
	Output OutputConfig `mapstructure:"output" toml:"output"`

	// Matrix holds all-pairs comparison settings
	Matrix MatrixConfig `mapstructure:"matrix" toml:"matrix"`

	// Log holds log file settings
	Log LogConfig `mapstructure:"log" toml:"log"`

	// Server holds HTTP API settings
	Server ServerConfig `mapstructure:"server" toml:"server"`
}

// CompareConfig holds configuration for manifest-driven comparisons
type CompareConfig struct {
	// Workers is the number of pairs compared concurrently
	Workers int `mapstructure:"workers" toml:"workers"`

	// FlagThreshold is the score at or above which a pair is flagged
	FlagThreshold float64 `mapstructure:"flag_threshold" toml:"flag_threshold"`

	// FailOnFlagged makes the run exit non-zero when a pair is flagged
	FailOnFlagged bool `mapstructure:"fail_on_flagged" toml:"fail_on_flagged"`
}

// InputConfig holds file collection settings
type InputConfig struct {
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
	Recursive       bool     `mapstructure:"recursive" toml:"recursive"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	// Format is one of text, json, yaml, csv (table for matrix runs)
	Format string `mapstructure:"format" toml:"format"`

	// Directory receives reports when no explicit output path is given.
	// Empty writes to stdout.
	Directory string `mapstructure:"directory" toml:"directory"`
}

// MatrixConfig holds all-pairs comparison settings
type MatrixConfig struct {
	MinScore   float64 `mapstructure:"min_score" toml:"min_score"`
	MaxResults int     `mapstructure:"max_results" toml:"max_results"`
}

// LogConfig holds log rotation settings
type LogConfig struct {
	Filename   string `mapstructure:"filename" toml:"filename"`
	Level      string `mapstructure:"level" toml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size" toml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age" toml:"max_age"`
	Compress   bool   `mapstructure:"compress" toml:"compress"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Workers:       domain.DefaultWorkers,
			FlagThreshold: domain.DefaultFlagThreshold,
		},
		Input: InputConfig{
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{},
			Recursive:       true,
		},
		Output: OutputConfig{
			Format: string(domain.DefaultCompareFormat),
		},
		Matrix: MatrixConfig{
			MinScore:   domain.DefaultMatrixMinScore,
			MaxResults: domain.DefaultMatrixMaxResults,
		},
		Log: LogConfig{
			Filename:   domain.DefaultLogFilename,
			Level:      domain.DefaultLogLevel,
			MaxSizeMB:  domain.DefaultLogMaxSizeMB,
			MaxBackups: domain.DefaultLogMaxBackups,
			MaxAgeDays: domain.DefaultLogMaxAgeDays,
		},
		Server: ServerConfig{
			Addr: domain.DefaultServerAddr,
		},
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Compare.Workers < 1 {
		return fmt.Errorf("compare.workers must be >= 1, got %d", c.Compare.Workers)
	}
	if c.Compare.FlagThreshold < 0 || c.Compare.FlagThreshold > 1 {
		return fmt.Errorf("compare.flag_threshold must be between 0 and 1, got %g", c.Compare.FlagThreshold)
	}
	if c.Matrix.MinScore < 0 || c.Matrix.MinScore > 1 {
		return fmt.Errorf("matrix.min_score must be between 0 and 1, got %g", c.Matrix.MinScore)
	}
	if c.Matrix.MaxResults < 0 {
		return fmt.Errorf("matrix.max_results must be >= 0, got %d", c.Matrix.MaxResults)
	}
	if !domain.IsMatrixFormat(domain.OutputFormat(c.Output.Format)) {
		return fmt.Errorf("output.format must be one of text, json, yaml, csv, table, got %q", c.Output.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings must be >= 0")
	}
	return nil
}

// bindDefaults registers every key so viper can resolve environment
// overrides for keys that are absent from the config file.
func bindDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("compare.workers", c.Compare.Workers)
	v.SetDefault("compare.flag_threshold", c.Compare.FlagThreshold)
	v.SetDefault("compare.fail_on_flagged", c.Compare.FailOnFlagged)
	v.SetDefault("input.include_patterns", c.Input.IncludePatterns)
	v.SetDefault("input.exclude_patterns", c.Input.ExcludePatterns)
	v.SetDefault("input.recursive", c.Input.Recursive)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.directory", c.Output.Directory)
	v.SetDefault("matrix.min_score", c.Matrix.MinScore)
	v.SetDefault("matrix.max_results", c.Matrix.MaxResults)
	v.SetDefault("log.filename", c.Log.Filename)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.max_size", c.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age", c.Log.MaxAgeDays)
	v.SetDefault("log.compress", c.Log.Compress)
	v.SetDefault("server.addr", c.Server.Addr)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads an explicit config file (format chosen by extension:
// toml, yaml or json) over the defaults, then applies ANTIPLAG_*
// environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := newViper()
	bindDefaults(v, cfg)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays ANTIPLAG_* environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	v := newViper()
	bindDefaults(v, cfg)
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}
