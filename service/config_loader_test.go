package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder26-cmd/anti-plagiarism/domain"
	"github.com/coder26-cmd/anti-plagiarism/internal/config"
)

const projectConfig = `[compare]
workers = 3
flag_threshold = 0.9
fail_on_flagged = true

[output]
format = "json"

[matrix]
min_score = 0.7
max_results = 5

[input]
exclude_patterns = ["**/migrations/**"]
`

func TestConfigurationLoader_Defaults(t *testing.T) {
	loader := NewConfigurationLoader(t.TempDir(), nil)

	req := loader.LoadDefaultConfig()
	assert.Equal(t, domain.DefaultCompareFormat, req.OutputFormat)
	assert.Equal(t, domain.DefaultWorkers, req.Workers)
	assert.Equal(t, domain.DefaultFlagThreshold, req.FlagThreshold)
	assert.False(t, req.FailOnFlagged)
	assert.Empty(t, req.OutputPath)
}

func TestConfigurationLoader_DiscoveredFile(t *testing.T) {
	dir := t.TempDir()
	createTestFile(t, dir, config.ConfigFileName, projectConfig)
	sub := filepath.Join(dir, "submissions", "week1")
	createTestFile(t, sub, "a.py", "x = 1\n")

	loader := NewConfigurationLoader(sub, nil)
	req, err := loader.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3, req.Workers)
	assert.Equal(t, 0.9, req.FlagThreshold)
	assert.True(t, req.FailOnFlagged)
	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)

	_, source, err := loader.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.ConfigFileName), source.Path)
}

func TestConfigurationLoader_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "broken.toml", "[compare]\nworkers = \"many\"\n")

	loader := NewConfigurationLoader(dir, nil)
	_, err := loader.LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))

	req := loader.LoadDefaultConfig()
	assert.Equal(t, domain.DefaultWorkers, req.Workers)
}

func TestConfigurationLoader_MergeConfig(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "custom.toml", projectConfig)

	flags := config.NewFlagTracker()
	flags.Set("workers")
	loader := NewConfigurationLoader(dir, flags)

	base, err := loader.LoadConfig(path)
	require.NoError(t, err)

	override := &domain.CompareRequest{
		ManifestPath:  "pairs.txt",
		OutputFormat:  domain.OutputFormatText,
		Workers:       8,
		FlagThreshold: 0.5,
	}
	merged := loader.MergeConfig(base, override)

	assert.Equal(t, "pairs.txt", merged.ManifestPath)
	assert.Equal(t, 8, merged.Workers, "explicit flag wins")
	assert.Equal(t, 0.9, merged.FlagThreshold, "unset flag keeps the file value")
	assert.Equal(t, domain.OutputFormatJSON, merged.OutputFormat)
	assert.True(t, merged.FailOnFlagged)
}

func TestConfigurationLoader_Matrix(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "custom.toml", projectConfig)

	flags := config.NewFlagTracker()
	flags.Set("min-score")
	loader := NewConfigurationLoader(dir, flags)

	base, err := loader.LoadMatrixConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.7, base.MinScore)
	assert.Equal(t, 5, base.MaxResults)
	assert.True(t, base.Recursive)
	assert.Equal(t, []string{"**/migrations/**"}, base.ExcludePatterns)

	merged := loader.MergeMatrixConfig(base, &domain.MatrixRequest{
		Paths:      []string{"submissions"},
		MinScore:   0.2,
		MaxResults: 100,
	})
	assert.Equal(t, []string{"submissions"}, merged.Paths)
	assert.Equal(t, 0.2, merged.MinScore)
	assert.Equal(t, 5, merged.MaxResults)
}

func TestConfigurationLoader_MatrixTextMapsToTable(t *testing.T) {
	loader := NewConfigurationLoader(t.TempDir(), nil)
	req, err := loader.LoadMatrixConfig("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMatrixFormat, req.OutputFormat)
}

func TestConfigurationLoader_OutputDirectory(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "custom.toml", "[output]\nformat = \"csv\"\ndirectory = \"reports\"\n")

	req, err := NewConfigurationLoader(dir, nil).LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "reports", filepath.Dir(req.OutputPath))
	assert.Regexp(t, `^compare_\d{8}_\d{6}\.csv$`, filepath.Base(req.OutputPath))
}

func TestGenerateTimestampedFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "matrix_20240309_140507.json", GenerateTimestampedFileName("matrix", "json", now))
}
