package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

func TestManifestReader_Parse(t *testing.T) {
	content := strings.Join([]string{
		"a.py b.py",
		"",
		"   ",
		"  c.py\td.py  ",
		"lonely.py",
		"x.py y.py z.py",
		"e.py f.py\r",
	}, "\n")

	pairs, err := NewManifestReader().Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, pairs, 5)

	assert.Equal(t, domain.FilePair{PathA: "a.py", PathB: "b.py", Line: 1, Raw: "a.py b.py"}, pairs[0])

	assert.Equal(t, "c.py", pairs[1].PathA)
	assert.Equal(t, "d.py", pairs[1].PathB)
	assert.Equal(t, 4, pairs[1].Line)
	assert.NoError(t, pairs[1].Err)

	assert.Equal(t, 5, pairs[2].Line)
	assert.Equal(t, "lonely.py", pairs[2].PathA)
	require.Error(t, pairs[2].Err)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(pairs[2].Err))
	assert.Contains(t, pairs[2].Err.Error(), "expected 2 paths, got 1")

	require.Error(t, pairs[3].Err)
	assert.Contains(t, pairs[3].Err.Error(), "got 3")

	assert.Equal(t, "f.py", pairs[4].PathB)
	assert.NoError(t, pairs[4].Err)
}

func TestManifestReader_ParseEmpty(t *testing.T) {
	pairs, err := NewManifestReader().Parse(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestManifestReader_ReadManifest(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "pairs.txt", "one.py two.py\n")

	pairs, err := NewManifestReader().ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "two.py", pairs[0].PathB)

	_, err = NewManifestReader().ReadManifest(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}
