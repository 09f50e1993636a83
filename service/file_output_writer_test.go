package service

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

func TestFileOutputWriter_ToWriter(t *testing.T) {
	var status, out bytes.Buffer
	w := NewFileOutputWriter(&status)

	err := w.Write(&out, "", domain.OutputFormatText, func(dst io.Writer) error {
		_, err := io.WriteString(dst, "a.py <-> b.py = 1.0\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "a.py <-> b.py = 1.0\n", out.String())
	assert.Empty(t, status.String())
}

func TestFileOutputWriter_ToFile(t *testing.T) {
	var status, out bytes.Buffer
	w := NewFileOutputWriter(&status)
	path := filepath.Join(t.TempDir(), "reports", "nested", "compare.json")

	err := w.Write(&out, path, domain.OutputFormatJSON, func(dst io.Writer) error {
		_, err := io.WriteString(dst, "{}\n")
		return err
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))
	assert.Empty(t, out.String(), "file output bypasses the writer")
	assert.Contains(t, status.String(), "JSON report generated: ")
	assert.Contains(t, status.String(), "compare.json")
}

func TestFileOutputWriter_WriteFuncError(t *testing.T) {
	w := NewFileOutputWriter(&bytes.Buffer{})
	err := w.Write(&bytes.Buffer{}, "", domain.OutputFormatText, func(io.Writer) error {
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(err))
}

func TestFileOutputWriter_UncreatableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := createTestFile(t, dir, "blocker", "")

	w := NewFileOutputWriter(&bytes.Buffer{})
	err := w.Write(nil, filepath.Join(blocker, "report.txt"), domain.OutputFormatText, func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(err))
}
