package stub

import "strings"

// Render writes the stub as a Python declaration: a one-line def header,
// an r""" docstring when there is anything to document, and an ellipsis
// body. Output is deterministic; the same stub always renders to the
// same bytes.
func Render(s *Stub) string {
	var b strings.Builder

	b.WriteString("def ")
	b.WriteString(s.Name)
	b.WriteString("(*args: str")
	for _, p := range s.Parameters {
		b.WriteString(", ")
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type.Annotation())
		b.WriteString(" = ")
		b.WriteString(p.Default)
	}
	if s.Editable {
		b.WriteString(", edit: bool = False")
	}
	if s.Queryable {
		b.WriteString(", query: bool = False")
	}
	b.WriteString(") -> Any:\n")

	if doc := docstring(s); doc != "" {
		b.WriteString(doc)
	}
	b.WriteString("    ...\n")
	return b.String()
}

// docstring renders the body documentation: summary, blank line, one
// line per argument under its long name, whichever alias styles the
// signature uses. Bare commands with nothing to document get no
// docstring at all.
func docstring(s *Stub) string {
	var entries []string
	for _, d := range s.Docs {
		line := "    " + d.Name + ": (" + d.ModeList + ")"
		if d.Doc != "" {
			line += " - " + d.Doc
		}
		entries = append(entries, line)
	}

	if s.Summary == "" && len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("    r\"\"\"")
	b.WriteString(s.Summary)
	if len(entries) > 0 {
		if s.Summary != "" {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(entries, "\n"))
		b.WriteString("\n    ")
	}
	b.WriteString("\"\"\"\n")
	return b.String()
}
