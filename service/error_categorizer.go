package service

import (
	"context"
	"errors"
	"strings"

	"github.com/coder26-cmd/anti-plagiarism/domain"
)

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeParseError:        domain.ErrorCategoryProcessing,
	domain.ErrCodeAnalysisError:     domain.ErrorCategoryProcessing,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
}

type errorPattern struct {
	category domain.ErrorCategory
	patterns []string
}

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []errorPattern
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() *ErrorCategorizerImpl {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns lists fallback message patterns, checked in order
func initializeErrorPatterns() []errorPattern {
	return []errorPattern{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"deadline",
			"context canceled",
			"timed out",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"toml",
			"invalid settings",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"manifest",
			"no such file",
			"file not found",
			"permission denied",
			"no python files",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"unsupported format",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"syntax",
			"compar",
		}},
	}
}

// Categorize determines the category of an error. Domain error codes take
// precedence over message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ec.categorized(domain.ErrorCategoryTimeout, "", err)
	}

	var domainErr domain.DomainError
	if errors.As(err, &domainErr) {
		if category, ok := codeCategories[domainErr.Code]; ok {
			return ec.categorized(category, domainErr.Code, err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, p := range ec.patterns {
		if containsAnyPattern(errMsg, p.patterns) {
			return ec.categorized(p.category, "", err)
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categorized(category domain.ErrorCategory, code string, err error) *domain.CategorizedError {
	return &domain.CategorizedError{
		Category: category,
		Code:     code,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that every manifest line holds exactly two paths",
			"Check that the listed files exist and are readable",
			"Paths in the manifest are resolved from the working directory",
		},
		domain.ErrorCategoryConfig: {
			"Verify the configuration file format and values",
			"Try: antiplag init to generate a valid config file",
			"Check for syntax errors in .antiplag.toml or pyproject.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Compare fewer files per run",
			"Check if any files are unusually large",
		},
		domain.ErrorCategoryOutput: {
			"Use --format text, json, yaml or csv",
			"Ensure the output directory is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Only Python 3 sources can be compared",
			"Try: python -m py_compile on the file to locate the syntax error",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Check the log file for details",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read the manifest or input files",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Comparison timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while comparing sources",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
