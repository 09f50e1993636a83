package service

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// ManifestReaderImpl implements the ManifestReader interface
type ManifestReaderImpl struct{}

// NewManifestReader creates a new manifest reader
func NewManifestReader() *ManifestReaderImpl {
	return &ManifestReaderImpl{}
}

// ReadManifest reads and parses the manifest at path
func (m *ManifestReaderImpl) ReadManifest(path string) ([]domain.FilePair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer file.Close()

	return m.Parse(file)
}

// Parse splits manifest content into pairs. Blank lines are skipped; a line
// that is not exactly two whitespace-separated paths becomes a pair carrying
// an INVALID_INPUT error so the batch can report it in place.
func (m *ManifestReaderImpl) Parse(r io.Reader) ([]domain.FilePair, error) {
	var pairs []domain.FilePair

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}

		pair := domain.FilePair{Line: lineNo, Raw: raw}
		if len(fields) != 2 {
			pair.Err = domain.NewManifestLineError(lineNo, len(fields))
			pair.PathA = fields[0]
			if len(fields) > 1 {
				pair.PathB = fields[1]
			}
		} else {
			pair.PathA, pair.PathB = fields[0], fields[1]
		}
		pairs = append(pairs, pair)
	}

	if err := scanner.Err(); err != nil {
		return nil, domain.NewInvalidInputError("failed to read manifest", err)
	}
	return pairs, nil
}
