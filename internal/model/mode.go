package model

import "strings"

// Mode is one of the three calling conventions a command argument may
// support: create (set at creation time), edit (change on an existing
// object), and query (read the current value back).
type Mode uint8

const (
	ModeCreate Mode = 1 << iota
	ModeEdit
	ModeQuery
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModeQuery:
		return "query"
	}
	return "unknown"
}

// ModeSet is a set of modes. The zero value is the empty set.
type ModeSet uint8

// AllModes lists every mode in canonical order (create, edit, query).
// Docstring mode lists and iteration over RawTypeByMode use this order so
// output stays deterministic.
var AllModes = []Mode{ModeCreate, ModeEdit, ModeQuery}

// Has reports whether the set contains m.
func (s ModeSet) Has(m Mode) bool { return s&ModeSet(m) != 0 }

// With returns a copy of the set with m added.
func (s ModeSet) With(m Mode) ModeSet { return s | ModeSet(m) }

// IsEmpty reports whether the set contains no modes.
func (s ModeSet) IsEmpty() bool { return s == 0 }

// Len returns the number of modes in the set.
func (s ModeSet) Len() int {
	n := 0
	for _, m := range AllModes {
		if s.Has(m) {
			n++
		}
	}
	return n
}

// Modes returns the members of the set in canonical order.
func (s ModeSet) Modes() []Mode {
	out := make([]Mode, 0, 3)
	for _, m := range AllModes {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String renders the set as a comma-separated list in canonical order,
// e.g. "create, edit, query".
func (s ModeSet) String() string {
	names := make([]string, 0, 3)
	for _, m := range s.Modes() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

// ParseMode maps a documentation mode marker to a Mode. Both the long
// words used by icon titles ("create") and the single-letter codes used
// by compact tables ("C") are accepted. The second return is false for
// unrecognized markers and for "multiuse", which is a property rather
// than a calling convention.
func ParseMode(token string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "create", "c":
		return ModeCreate, true
	case "edit", "e":
		return ModeEdit, true
	case "query", "q":
		return ModeQuery, true
	}
	return 0, false
}
