package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]float64{"score": 1}))
	assert.Equal(t, "{\n  \"score\": 1\n}\n", buf.String())

	err := WriteJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[OUTPUT_ERROR] failed to encode JSON")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, map[string][]string{"files": {"a.py", "b.py"}}))
	assert.Equal(t, "files:\n  - a.py\n  - b.py\n", buf.String())
}

func TestFormatUtils(t *testing.T) {
	utils := NewFormatUtils()

	assert.Equal(t, "SUMMARY\n-------\n", utils.FormatSectionHeader("Summary"))
	assert.Equal(t, "  Pairs: 3\n", utils.FormatLabelWithIndent(SectionPadding, "Pairs", 3))
	assert.Equal(t, "12ms", utils.FormatDuration(12))

	header := utils.FormatMainHeader("Similarity Matrix")
	assert.Contains(t, header, "Similarity Matrix\n")
	assert.Contains(t, header, "========")
}
