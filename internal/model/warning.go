package model

import "fmt"

// Warning codes for recoverable, row- or document-scoped problems.
// Codes are stable; the JSON output mode exposes them to scripts.
const (
	WarnDocUnparsable   = "DOC_UNPARSABLE"
	WarnRowUnparsable   = "ARG_ROW_UNPARSABLE"
	WarnUnknownType     = "UNKNOWN_TYPE_TOKEN"
	WarnNameMismatch    = "NAME_MISMATCH"
	WarnNoCategory      = "NO_CATEGORY"
	WarnCapabilityGuess = "CAPABILITY_SENTENCE_GUESSED"
)

// Warning is a non-fatal diagnostic tied to a source page. Warnings are
// reported and the batch continues; they never abort a run.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Warningf builds a Warning with a formatted message.
func Warningf(code, path, format string, args ...interface{}) Warning {
	return Warning{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return w.Path + ": " + w.Message
}
