package parser

import (
	"strings"

	"github.com/stubworks/cmdstub/internal/model"
)

// Capabilities are the command-level calling conventions declared by a
// page's capability sentence ("xform is undoable, queryable, and
// editable.").
type Capabilities struct {
	Undoable  bool
	Queryable bool
	Editable  bool
}

// capabilitySentences maps the normalized tail of the capability
// sentence (command name stripped, lowercased) to its flags. Every
// permutation observed across documentation releases is listed.
var capabilitySentences = map[string]Capabilities{
	"is undoable, queryable, and editable.":             {true, true, true},
	"is undoable, queryable, and not editable.":         {true, true, false},
	"is undoable, not queryable, and editable.":         {true, false, true},
	"is undoable, not queryable, and not editable.":     {true, false, false},
	"is not undoable, queryable, and editable.":         {false, true, true},
	"is not undoable, queryable, and not editable.":     {false, true, false},
	"is not undoable, not queryable, and editable.":     {false, false, true},
	"is not undoable, not queryable, and not editable.": {false, false, false},
}

// looksLikeCapabilitySentence reports whether a text block mentions all
// three capability words. Requiring all three avoids matching prose that
// happens to use one of them.
func looksLikeCapabilitySentence(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "undoable") &&
		strings.Contains(lower, "queryable") &&
		strings.Contains(lower, "editable")
}

// parseCapabilities reads the capability sentence. Known permutations
// resolve exactly; anything else falls back to a word scan that checks
// whether each capability word is negated, and reports guessed=true so
// the caller can attach a CAPABILITY_SENTENCE_GUESSED warning.
func parseCapabilities(text string) (caps Capabilities, guessed bool) {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	// Strip the leading command name: the sentence starts "<name> is ...".
	if _, tail, ok := strings.Cut(normalized, " "); ok {
		if c, found := capabilitySentences[tail]; found {
			return c, false
		}
	}

	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.'
	})
	negated := false
	for _, w := range words {
		switch w {
		case "not":
			negated = true
			continue
		case "undoable":
			caps.Undoable = !negated
		case "queryable":
			caps.Queryable = !negated
		case "editable":
			caps.Editable = !negated
		}
		negated = false
	}
	return caps, true
}

// parseModeMarkers folds a row's mode markers (icon titles in HTML
// tables, letter codes in compact tables) into a mode set plus the
// multiuse property.
func parseModeMarkers(markers []string) (model.ModeSet, bool) {
	var modes model.ModeSet
	multiuse := false
	for _, marker := range markers {
		token := strings.ToLower(strings.TrimSpace(marker))
		if token == "multiuse" || token == "m" {
			multiuse = true
			continue
		}
		if m, ok := model.ParseMode(token); ok {
			modes = modes.With(m)
		}
	}
	return modes, multiuse
}

// splitTypeCell separates a type cell into the unqualified base text and
// any mode-qualified segments. Segments are ';'-separated; a segment of
// the form "query: boolean" binds its type text to that mode only.
//
//	"linear"                  base "linear"
//	"string; query: boolean"  base "string", query explicitly "boolean"
func splitTypeCell(cell string) (base string, explicit map[model.Mode]string) {
	for _, segment := range strings.Split(cell, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if prefix, rest, ok := strings.Cut(segment, ":"); ok {
			if m, isMode := model.ParseMode(prefix); isMode {
				if explicit == nil {
					explicit = make(map[model.Mode]string, 1)
				}
				explicit[m] = strings.TrimSpace(rest)
				continue
			}
		}
		base = segment
	}
	return base, explicit
}

// buildArgument assembles an ArgumentRecord from the parsed pieces of a
// table row, distributing the type cell across the supported modes. Rows
// with no usable long name or no modes are rejected; the caller drops
// them with an ARG_ROW_UNPARSABLE warning.
func buildArgument(longName, shortName, typeCell, description string, markers []string) (model.ArgumentRecord, bool) {
	longName = strings.TrimSpace(longName)
	shortName = strings.TrimSpace(shortName)
	if longName == "" && shortName == "" {
		return model.ArgumentRecord{}, false
	}
	if longName == "" {
		longName = shortName
	}

	modes, multiuse := parseModeMarkers(markers)
	if modes.IsEmpty() {
		return model.ArgumentRecord{}, false
	}

	base, explicit := splitTypeCell(typeCell)

	arg := model.ArgumentRecord{
		LongName:      longName,
		ShortName:     shortName,
		Modes:         modes,
		Multiuse:      multiuse,
		RawTypeByMode: make(map[model.Mode]string, modes.Len()),
		Description:   collapseWhitespace(description),
	}
	for _, m := range modes.Modes() {
		if text, ok := explicit[m]; ok {
			arg.RawTypeByMode[m] = text
			arg.ExplicitModes = arg.ExplicitModes.With(m)
		} else {
			arg.RawTypeByMode[m] = base
		}
	}
	return arg, true
}

// collapseWhitespace joins wrapped documentation prose into a single
// line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
