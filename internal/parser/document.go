// Package parser loads raw command documentation pages and extracts
// structured CommandRecords from them. HTML pages follow the offline
// reference layout; Markdown pages are the hand-authored format used for
// plugin commands.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stubworks/cmdstub/internal/model"
)

// ErrNotCommandPage marks documents that parse fine but are not command
// documentation: index pages, blank placeholder pages, obsolete-command
// pages. Callers skip these silently.
var ErrNotCommandPage = errors.New("not a command documentation page")

// UnparsableError wraps a document-level parse failure. The document is
// skipped with a warning and the batch continues.
type UnparsableError struct {
	Path string
	Err  error
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("unparsable document %s: %v", e.Path, e.Err)
}

func (e *UnparsableError) Unwrap() error { return e.Err }

// Result is the outcome of parsing one documentation page: the extracted
// record plus any row- or page-scoped warnings.
type Result struct {
	Command  *model.CommandRecord
	Warnings []model.Warning
}

// ParseFile reads and parses a single documentation page, dispatching on
// the file extension.
func ParseFile(path, relativePath string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnparsableError{Path: relativePath, Err: err}
	}
	return Parse(string(content), relativePath)
}

// Parse parses documentation page content. relativePath decides the
// format and is recorded on the extracted command; its base name is
// checked against the declared command name.
func Parse(content, relativePath string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(relativePath)) {
	case ".html", ".htm":
		return parseHTML(content, relativePath)
	case ".md":
		return parseMarkdown(content, relativePath)
	}
	return nil, &UnparsableError{
		Path: relativePath,
		Err:  fmt.Errorf("unsupported document format %q", filepath.Ext(relativePath)),
	}
}

// checkNameMatchesFile warns when a command's declared name cannot be
// reconciled with its filename. Renamed/aliased commands are unspecified
// upstream; we keep the declared name and flag the mismatch instead of
// silently renaming.
func checkNameMatchesFile(name, relativePath string) []model.Warning {
	base := strings.TrimSuffix(filepath.Base(relativePath), filepath.Ext(relativePath))
	if base == "" || strings.EqualFold(base, name) {
		return nil
	}
	return []model.Warning{model.Warningf(model.WarnNameMismatch, relativePath,
		"declared command %q does not match file name %q", name, base)}
}

// fallbackCategory derives a category from the page's location when the
// page itself declares none: the immediate source subdirectory, if any.
func fallbackCategory(relativePath string) string {
	dir := filepath.Dir(relativePath)
	if dir == "." || dir == "" {
		return ""
	}
	return filepath.Base(dir)
}
