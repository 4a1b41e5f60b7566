// Package model defines the immutable records the compiler pipeline
// passes between stages: one CommandRecord per documentation page, one
// ArgumentRecord per argument-table row.
package model

// CommandRecord is the structured form of one documented command.
// It is constructed once by the extractor and never mutated afterwards.
type CommandRecord struct {
	// Name is the command identifier as declared in the page synopsis.
	Name string `json:"name"`

	// Summary is the free-text description. Empty for plugin commands
	// that ship without dedicated documentation.
	Summary string `json:"summary,omitempty"`

	// Categories lists the documentation categories the command belongs
	// to. The first entry decides which stub module the command lands in.
	Categories []string `json:"categories,omitempty"`

	// Arguments preserves the argument-table row order. Order matters for
	// rendering determinism even though emitted parameters are
	// keyword-only.
	Arguments []ArgumentRecord `json:"arguments,omitempty"`

	// Undoable, Queryable and Editable come from the page's capability
	// sentence ("This command is undoable, queryable, and editable.").
	Undoable  bool `json:"undoable"`
	Queryable bool `json:"queryable"`
	Editable  bool `json:"editable"`

	// SourcePath is the page the record was extracted from, relative to
	// the source directory.
	SourcePath string `json:"source_path,omitempty"`
}

// Category returns the owning category for stub placement, falling back
// to "uncategorized" when the page declared none.
func (c *CommandRecord) Category() string {
	if len(c.Categories) > 0 && c.Categories[0] != "" {
		return c.Categories[0]
	}
	return "uncategorized"
}

// SupportsQuery reports whether the command accepts query mode, either
// declared at the command level or implied by any query-tagged argument.
func (c *CommandRecord) SupportsQuery() bool {
	if c.Queryable {
		return true
	}
	for _, a := range c.Arguments {
		if a.Modes.Has(ModeQuery) {
			return true
		}
	}
	return false
}

// SupportsEdit reports whether the command accepts edit mode.
func (c *CommandRecord) SupportsEdit() bool {
	if c.Editable {
		return true
	}
	for _, a := range c.Arguments {
		if a.Modes.Has(ModeEdit) {
			return true
		}
	}
	return false
}

// ArgumentRecord is one row of a command's argument table.
type ArgumentRecord struct {
	LongName  string `json:"long_name"`
	ShortName string `json:"short_name,omitempty"`

	// Modes is never empty: a row only exists because the argument is
	// usable in at least one mode.
	Modes ModeSet `json:"-"`

	// Multiuse marks arguments that may be passed multiple times in one
	// call. It is a documentation property, not a mode; it survives into
	// the docstring mode list only.
	Multiuse bool `json:"multiuse,omitempty"`

	// RawTypeByMode holds the raw type text per mode, exactly as written
	// in the table. It has an entry for every mode in Modes.
	RawTypeByMode map[Mode]string `json:"-"`

	// ExplicitModes marks the modes whose raw type was stated with its
	// own mode-qualified segment in the type cell (e.g. "query: boolean")
	// rather than inherited from the unqualified text. The resolver needs
	// the distinction to decide whether to synthesize the query-probe
	// union.
	ExplicitModes ModeSet `json:"-"`

	Description string `json:"description,omitempty"`
}

// RawType returns the raw type text for m, or the empty string when the
// argument does not support m.
func (a *ArgumentRecord) RawType(m Mode) string {
	return a.RawTypeByMode[m]
}

// DocModes renders the docstring mode list: the supported modes in
// canonical order, with "multiuse" appended when set.
func (a *ArgumentRecord) DocModes() string {
	s := a.Modes.String()
	if a.Multiuse {
		if s == "" {
			return "multiuse"
		}
		return s + ", multiuse"
	}
	return s
}
