package domain

// ============================================================================
// Comparison Defaults
// ============================================================================

const (
	// DefaultFlagThreshold is the score at or above which a pair is flagged
	// as likely duplication. It matches the near-copy band used by clone
	// detectors (Roy & Cordy, 2007).
	DefaultFlagThreshold = 0.8

	// DefaultWorkers compares pairs one at a time.
	DefaultWorkers = 1

	// DefaultCompareFormat is the format of the batch report.
	DefaultCompareFormat = OutputFormatText
)

// ============================================================================
// Matrix Defaults
// ============================================================================

const (
	// DefaultMatrixMinScore hides pairs that are clearly unrelated.
	DefaultMatrixMinScore = 0.5

	// DefaultMatrixMaxResults of 0 reports every pair above the minimum.
	DefaultMatrixMaxResults = 0

	// DefaultMatrixFormat is the format of the matrix report.
	DefaultMatrixFormat = OutputFormatTable
)

// ============================================================================
// Logging Defaults
// ============================================================================

const (
	DefaultLogFilename   = ".antiplag.log"
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// ============================================================================
// Server Defaults
// ============================================================================

const (
	// DefaultServerAddr is the listen address of the HTTP API.
	DefaultServerAddr = ":8080"

	// DefaultMaxRequestBytes caps the body of one API request.
	DefaultMaxRequestBytes = 4 << 20
)
