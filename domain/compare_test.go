package domain

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompareRequest() CompareRequest {
	return CompareRequest{
		ManifestPath:  "pairs.txt",
		OutputFormat:  OutputFormatText,
		OutputWriter:  &bytes.Buffer{},
		Workers:       DefaultWorkers,
		FlagThreshold: DefaultFlagThreshold,
	}
}

func TestCompareRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*CompareRequest)
		wantCode string
	}{
		{name: "valid", modify: func(*CompareRequest) {}},
		{name: "missing manifest", modify: func(r *CompareRequest) { r.ManifestPath = "" }, wantCode: ErrCodeInvalidInput},
		{name: "zero workers", modify: func(r *CompareRequest) { r.Workers = 0 }, wantCode: ErrCodeInvalidInput},
		{name: "threshold above one", modify: func(r *CompareRequest) { r.FlagThreshold = 1.5 }, wantCode: ErrCodeInvalidInput},
		{name: "negative threshold", modify: func(r *CompareRequest) { r.FlagThreshold = -0.1 }, wantCode: ErrCodeInvalidInput},
		{name: "table is matrix only", modify: func(r *CompareRequest) { r.OutputFormat = OutputFormatTable }, wantCode: ErrCodeUnsupportedFormat},
		{name: "csv", modify: func(r *CompareRequest) { r.OutputFormat = OutputFormatCSV }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCompareRequest()
			tt.modify(&req)
			err := req.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ErrorCode(err))
		})
	}
}

func TestMatrixRequest_Validate(t *testing.T) {
	valid := func() MatrixRequest {
		return MatrixRequest{
			Paths:        []string{"src"},
			MinScore:     DefaultMatrixMinScore,
			Workers:      2,
			OutputFormat: OutputFormatTable,
		}
	}

	req := valid()
	assert.NoError(t, req.Validate())

	req = valid()
	req.Paths = nil
	assert.Error(t, req.Validate())

	req = valid()
	req.MinScore = 2
	assert.Error(t, req.Validate())

	req = valid()
	req.MaxResults = -1
	assert.Error(t, req.Validate())

	req = valid()
	req.OutputFormat = "html"
	assert.Equal(t, ErrCodeUnsupportedFormat, ErrorCode(req.Validate()))
}

func TestSummarize(t *testing.T) {
	results := []PairResult{
		{Status: PairStatusOK, Score: 1.0, Flagged: true},
		{Status: PairStatusOK, Score: 0.5},
		{Status: PairStatusFailed, ErrorCode: ErrCodeParseError},
	}

	summary := Summarize(results)
	assert.Equal(t, 3, summary.TotalPairs)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.FlaggedPairs)
	assert.Equal(t, 0.75, summary.AverageScore)
	assert.Equal(t, 1.0, summary.MaxScore)

	empty := Summarize(nil)
	assert.Equal(t, CompareSummary{}, empty)

	response := &CompareResponse{Summary: summary}
	assert.True(t, response.HasFlagged())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeParseError, ErrorCode(NewParseError("a.py", errors.New("bad"))))
	assert.Equal(t, ErrCodeFileNotFound, ErrorCode(fmt.Errorf("wrapped: %w", NewFileNotFoundError("a.py", nil))))
	assert.Equal(t, ErrCodeAnalysisError, ErrorCode(errors.New("plain")))

	assert.True(t, HasCode(NewManifestLineError(3, 1), ErrCodeInvalidInput))
	assert.False(t, HasCode(nil, ErrCodeAnalysisError))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewParseError("a.py", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[PARSE_ERROR] failed to parse file: a.py: root cause", err.Error())
}

func TestIsReportFormat(t *testing.T) {
	for _, f := range []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV} {
		assert.True(t, IsReportFormat(f), f)
		assert.True(t, IsMatrixFormat(f), f)
	}
	assert.False(t, IsReportFormat(OutputFormatTable))
	assert.True(t, IsMatrixFormat(OutputFormatTable))
	assert.False(t, IsMatrixFormat("html"))
}

func TestOutputFormat_Extension(t *testing.T) {
	tests := map[OutputFormat]string{
		OutputFormatJSON:  "json",
		OutputFormatYAML:  "yaml",
		OutputFormatCSV:   "csv",
		OutputFormatText:  "txt",
		OutputFormatTable: "txt",
	}
	for format, want := range tests {
		assert.Equal(t, want, format.Extension(), format)
	}
}
