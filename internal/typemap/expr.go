// Package typemap normalizes the raw type text found in command
// documentation tables into semantic type expressions, and renders those
// expressions as Python typing annotations for the emitted stubs.
package typemap

import "strings"

// ScalarKind enumerates the primitive kinds the documentation vocabulary
// resolves to.
type ScalarKind int

const (
	Bool ScalarKind = iota
	Int
	Float
	String
	// ObjectName is a scene-object identifier. It annotates as str but is
	// kept distinct so consumers of the model can tell names from plain
	// strings.
	ObjectName
)

func (k ScalarKind) annotation() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return "str"
}

// Expr is a normalized type expression. It is a sealed tagged union:
// the only implementations are Scalar, Tuple, Seq, Union, Flag and Any,
// so consumers can match exhaustively.
type Expr interface {
	// Annotation renders the expression as Python typing text. Rendering
	// is deterministic: the same expression always yields the same text.
	Annotation() string

	sealedExpr()
}

// Scalar is a single primitive value.
type Scalar struct{ Kind ScalarKind }

func (s Scalar) Annotation() string { return s.Kind.annotation() }
func (Scalar) sealedExpr()          {}

// Tuple is a fixed-arity positional group, e.g. three linear values or a
// heterogeneous [int, string] pair.
type Tuple struct{ Elems []Expr }

func (t Tuple) Annotation() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.Annotation()
	}
	return "Tuple[" + strings.Join(parts, ", ") + "]"
}
func (Tuple) sealedExpr() {}

// Seq is a variable-length list, e.g. string[].
type Seq struct{ Elem Expr }

func (s Seq) Annotation() string { return "List[" + s.Elem.Annotation() + "]" }
func (Seq) sealedExpr()          {}

// Union lists alternative acceptable types. Alternatives keep their
// first-seen order; construction through NewUnion flattens and dedupes.
type Union struct{ Alts []Expr }

func (u Union) Annotation() string {
	seen := make(map[string]bool, len(u.Alts))
	parts := make([]string, 0, len(u.Alts))
	for _, a := range u.Alts {
		ann := a.Annotation()
		if seen[ann] {
			continue
		}
		seen[ann] = true
		parts = append(parts, ann)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "Union[" + strings.Join(parts, ", ") + "]"
}
func (Union) sealedExpr() {}

// Flag is the presence-only boolean used when an argument is passed in
// query mode to request its current value instead of setting one.
type Flag struct{}

func (Flag) Annotation() string { return "bool" }
func (Flag) sealedExpr()        {}

// Any is the graceful-degradation fallback for vocabulary tokens the
// resolver does not recognize: any acceptable value.
type Any struct{}

func (Any) Annotation() string { return "Any" }
func (Any) sealedExpr()        {}

// NewUnion builds a union from alternatives, flattening nested unions and
// dropping duplicates by annotation. A single surviving alternative is
// returned directly. Any swallows everything else: a union containing the
// fallback type carries no information beyond it.
func NewUnion(alts ...Expr) Expr {
	flat := make([]Expr, 0, len(alts))
	seen := make(map[string]bool, len(alts))
	var appendAlt func(e Expr)
	appendAlt = func(e Expr) {
		if e == nil {
			return
		}
		if u, ok := e.(Union); ok {
			for _, a := range u.Alts {
				appendAlt(a)
			}
			return
		}
		ann := e.Annotation()
		if seen[ann] {
			return
		}
		seen[ann] = true
		flat = append(flat, e)
	}
	for _, a := range alts {
		appendAlt(a)
	}
	for _, a := range flat {
		if _, ok := a.(Any); ok {
			return Any{}
		}
	}
	switch len(flat) {
	case 0:
		return Any{}
	case 1:
		return flat[0]
	}
	return Union{Alts: flat}
}

// HasFlag reports whether the expression contains the query-probe Flag
// branch.
func HasFlag(e Expr) bool {
	switch v := e.(type) {
	case Flag:
		return true
	case Union:
		for _, a := range v.Alts {
			if HasFlag(a) {
				return true
			}
		}
	}
	return false
}

// Placeholder returns the default-value placeholder for an expression.
// Scalars get their primitive kind representative; everything without a
// single primitive kind gets the ellipsis placeholder. Placeholders
// describe type, not a runtime default: the real command has no fixed
// default independent of scene state.
func Placeholder(e Expr) string {
	switch v := e.(type) {
	case Scalar:
		switch v.Kind {
		case Bool:
			return "False"
		case Int:
			return "0"
		case Float:
			return "0.0"
		}
		return `""`
	case Flag:
		return "False"
	}
	return "..."
}
