package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/config"
)

// ConfigurationLoaderImpl turns discovered configuration into requests and
// merges explicitly set command-line flags over it.
type ConfigurationLoaderImpl struct {
	loader   *config.TomlConfigLoader
	startDir string
	flags    *config.FlagTracker
}

// NewConfigurationLoader creates a loader that discovers configuration
// from startDir. flags may be nil when no command-line flags apply.
func NewConfigurationLoader(startDir string, flags *config.FlagTracker) *ConfigurationLoaderImpl {
	if flags == nil {
		flags = config.NewFlagTracker()
	}
	return &ConfigurationLoaderImpl{
		loader:   config.NewTomlConfigLoader(),
		startDir: startDir,
		flags:    flags,
	}
}

// Resolve returns the effective configuration and where it came from
func (c *ConfigurationLoaderImpl) Resolve(path string) (*config.Config, config.Source, error) {
	cfg, source, err := c.loader.Load(path, c.startDir)
	if err != nil {
		return nil, config.Source{}, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, source, nil
}

// LoadConfig loads configuration from the specified path (empty discovers)
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.CompareRequest, error) {
	cfg, _, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}
	req := c.convertToCompareRequest(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig loads discovered configuration, falling back to the
// built-in defaults when it cannot be read.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.CompareRequest {
	if req, err := c.LoadConfig(""); err == nil {
		return req
	}
	return c.convertToCompareRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file. Only flags the user
// set explicitly override configured values.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.CompareRequest, override *domain.CompareRequest) *domain.CompareRequest {
	merged := *base

	// Always taken from the command line
	merged.ManifestPath = override.ManifestPath
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.OutputFormat = domain.OutputFormat(c.flags.MergeString(string(base.OutputFormat), string(override.OutputFormat), "format"))
	merged.OutputPath = c.flags.MergeString(base.OutputPath, override.OutputPath, "output")
	merged.Workers = c.flags.MergeInt(base.Workers, override.Workers, "workers")
	merged.FlagThreshold = c.flags.MergeFloat64(base.FlagThreshold, override.FlagThreshold, "flag-threshold")
	merged.FailOnFlagged = c.flags.MergeBool(base.FailOnFlagged, override.FailOnFlagged, "fail-on-flagged")
	merged.ShowProgress = c.flags.MergeBool(base.ShowProgress, override.ShowProgress, "progress")

	return &merged
}

// LoadMatrixConfig builds a matrix request from configuration
func (c *ConfigurationLoaderImpl) LoadMatrixConfig(path string) (*domain.MatrixRequest, error) {
	cfg, _, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}

	format := domain.OutputFormat(cfg.Output.Format)
	if format == domain.OutputFormatText {
		format = domain.DefaultMatrixFormat
	}

	return &domain.MatrixRequest{
		Recursive:       cfg.Input.Recursive,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		MinScore:        cfg.Matrix.MinScore,
		MaxResults:      cfg.Matrix.MaxResults,
		FlagThreshold:   cfg.Compare.FlagThreshold,
		OutputFormat:    format,
		OutputWriter:    os.Stdout,
		OutputPath:      outputPathFor(cfg.Output.Directory, "matrix", format),
		Workers:         cfg.Compare.Workers,
		ShowProgress:    true,
		ConfigPath:      path,
	}, nil
}

// MergeMatrixConfig merges explicitly set matrix flags over base
func (c *ConfigurationLoaderImpl) MergeMatrixConfig(base *domain.MatrixRequest, override *domain.MatrixRequest) *domain.MatrixRequest {
	merged := *base

	merged.Paths = override.Paths
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.Recursive = c.flags.MergeBool(base.Recursive, override.Recursive, "recursive")
	merged.IncludePatterns = c.flags.MergeStringSlice(base.IncludePatterns, override.IncludePatterns, "include")
	merged.ExcludePatterns = c.flags.MergeStringSlice(base.ExcludePatterns, override.ExcludePatterns, "exclude")
	merged.MinScore = c.flags.MergeFloat64(base.MinScore, override.MinScore, "min-score")
	merged.MaxResults = c.flags.MergeInt(base.MaxResults, override.MaxResults, "max-results")
	merged.FlagThreshold = c.flags.MergeFloat64(base.FlagThreshold, override.FlagThreshold, "flag-threshold")
	merged.OutputFormat = domain.OutputFormat(c.flags.MergeString(string(base.OutputFormat), string(override.OutputFormat), "format"))
	merged.OutputPath = c.flags.MergeString(base.OutputPath, override.OutputPath, "output")
	merged.Workers = c.flags.MergeInt(base.Workers, override.Workers, "workers")
	merged.ShowProgress = c.flags.MergeBool(base.ShowProgress, override.ShowProgress, "progress")

	return &merged
}

func (c *ConfigurationLoaderImpl) convertToCompareRequest(cfg *config.Config) *domain.CompareRequest {
	format := domain.OutputFormat(cfg.Output.Format)
	if !domain.IsReportFormat(format) {
		format = domain.DefaultCompareFormat
	}

	return &domain.CompareRequest{
		OutputFormat:  format,
		OutputWriter:  os.Stdout,
		OutputPath:    outputPathFor(cfg.Output.Directory, "compare", format),
		Workers:       cfg.Compare.Workers,
		ShowProgress:  true,
		FlagThreshold: cfg.Compare.FlagThreshold,
		FailOnFlagged: cfg.Compare.FailOnFlagged,
	}
}

// outputPathFor names a timestamped report inside dir; empty dir means stdout
func outputPathFor(dir, command string, format domain.OutputFormat) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, GenerateTimestampedFileName(command, format.Extension(), time.Now()))
}

// GenerateTimestampedFileName builds "<command>_<timestamp>.<ext>"
func GenerateTimestampedFileName(command, extension string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", command, now.Format("20060102_150405"), extension)
}
