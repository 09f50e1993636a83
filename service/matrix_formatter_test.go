package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

func sampleMatrixResponse() *domain.MatrixResponse {
	return &domain.MatrixResponse{
		Files: []string{"a.py", "b.py", "c.py", "bad.py"},
		Pairs: []domain.PairResult{
			{PathA: "a.py", PathB: "b.py", Status: domain.PairStatusOK, Score: 1.0, Flagged: true},
			{PathA: "a.py", PathB: "c.py", Status: domain.PairStatusOK, Score: 0.61538, Distance: 5},
		},
		Failures: []domain.FileFailure{
			{Path: "bad.py", Reason: "[PARSE_ERROR] failed to parse file: bad.py", ErrorCode: domain.ErrCodeParseError},
		},
		Summary: domain.MatrixSummary{
			FilesAnalyzed: 3,
			FilesFailed:   1,
			PairsCompared: 3,
			PairsReported: 2,
			FlaggedPairs:  1,
			MaxScore:      1.0,
		},
	}
}

func TestMatrixFormatter_Table(t *testing.T) {
	for _, format := range []domain.OutputFormat{domain.OutputFormatTable, domain.OutputFormatText} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewMatrixFormatter().Write(sampleMatrixResponse(), format, &buf))
			out := buf.String()

			assert.Contains(t, out, "Similarity Matrix")
			assert.Contains(t, out, "FILE A")
			assert.Contains(t, out, "0.61538")
			assert.Contains(t, out, "Pairs compared: 3")
			assert.Contains(t, out, "SKIPPED FILES")
			assert.Contains(t, out, "bad.py: PARSE_ERROR")
		})
	}
}

func TestMatrixFormatter_EmptyTable(t *testing.T) {
	response := &domain.MatrixResponse{Pairs: []domain.PairResult{}}

	var buf bytes.Buffer
	require.NoError(t, NewMatrixFormatter().Write(response, domain.OutputFormatTable, &buf))
	assert.Contains(t, buf.String(), "No pairs at or above the minimum score.")
	assert.NotContains(t, buf.String(), "SKIPPED FILES")
}

func TestMatrixFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMatrixFormatter().Write(sampleMatrixResponse(), domain.OutputFormatJSON, &buf))

	var decoded domain.MatrixResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Pairs, 2)
	assert.Equal(t, 0.61538, decoded.Pairs[1].Score)
	assert.Equal(t, 1, decoded.Summary.FilesFailed)
}

func TestMatrixFormatter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMatrixFormatter().Write(sampleMatrixResponse(), domain.OutputFormatCSV, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"path_a", "path_b", "score", "distance", "flagged"},
		{"a.py", "b.py", "1.0", "0", "true"},
		{"a.py", "c.py", "0.61538", "5", "false"},
	}, records)
}

func TestMatrixFormatter_Errors(t *testing.T) {
	f := NewMatrixFormatter()
	assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(f.Write(nil, domain.OutputFormatTable, &bytes.Buffer{})))
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(f.Write(sampleMatrixResponse(), "html", &bytes.Buffer{})))
}
