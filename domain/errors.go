package domain

import (
	"errors"
	"fmt"
)

// Error codes carried by DomainError. A failed PairResult records the code
// of the error that failed it.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// DomainError is a coded error. Its text is "[CODE] message: cause".
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	msg := "[" + e.Code + "] " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewManifestLineError reports a manifest line that does not hold a pair
func NewManifestLineError(line, fields int) error {
	return NewInvalidInputError(fmt.Sprintf("manifest line %d: expected 2 paths, got %d", line, fields), nil)
}

func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, "file not found: "+path, cause)
}

// NewParseError reports a source that is not valid Python 3
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, "failed to parse file: "+file, cause)
}

func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, "unsupported format: "+format, nil)
}

// ErrorCode returns the code of the first DomainError in err's chain.
// Uncoded errors count as ANALYSIS_ERROR.
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeAnalysisError
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return err != nil && ErrorCode(err) == code
}
