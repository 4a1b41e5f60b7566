// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Source errors
	ErrSourceNotFound = "SOURCE_NOT_FOUND"
	ErrDocUnparsable  = "DOC_UNPARSABLE"

	// Vocabulary errors
	ErrVocabInvalid = "VOCAB_INVALID"

	// Output errors
	ErrOutputConflict = "OUTPUT_CONFLICT"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrFileNotFound = "FILE_NOT_FOUND"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
