package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// skipDirs are never descended into when collecting files
var skipDirs = []string{
	"__pycache__",
	"node_modules",
	"venv",
	"env",
	"build",
	"dist",
	"site-packages",
	"*.egg-info",
}

// FileReaderImpl reads sources and collects Python files for matrix runs
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectPythonFiles finds Python files under the given paths. Explicit file
// arguments are kept if they pass the patterns; directories are walked.
// The result is sorted and free of duplicates.
func (f *FileReaderImpl) CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	if err := f.ValidatePatterns(append(append([]string{}, includePatterns...), excludePatterns...)); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if f.IsValidPythonFile(path) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
				add(path)
			}
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidPythonFile checks if a file is a Python source file
func (f *FileReaderImpl) IsValidPythonFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".py"
}

// ValidatePatterns rejects malformed glob patterns up front
func (f *FileReaderImpl) ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %q", pattern), nil)
		}
	}
	return nil
}

func (f *FileReaderImpl) collectFromDirectory(root string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the rest of the tree is still walked
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") || f.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if f.IsValidPythonFile(path) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}
	return files, nil
}

// shouldIncludeFile matches patterns against both the base name and the
// slash-separated path, so "test_*.py" and "**/tests/**" both work.
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matchPattern(pattern, base, slashed) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchPattern(pattern, base, slashed) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, base, slashed string) bool {
	pattern = filepath.ToSlash(pattern)
	if matched, _ := doublestar.Match(pattern, base); matched {
		return true
	}
	if matched, _ := doublestar.Match(pattern, slashed); matched {
		return true
	}
	// Allow "**/x" patterns to match relative paths without a leading dir
	if strings.HasPrefix(pattern, "**/") {
		matched, _ := doublestar.Match(strings.TrimPrefix(pattern, "**/"), slashed)
		return matched
	}
	return false
}

func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	dirLower := strings.ToLower(dirName)
	for _, skipDir := range skipDirs {
		if matched, _ := filepath.Match(skipDir, dirLower); matched {
			return true
		}
	}
	return false
}
