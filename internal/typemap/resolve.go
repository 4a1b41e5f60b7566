package typemap

import (
	"strconv"
	"strings"

	"github.com/stubworks/cmdstub/internal/model"
)

// Resolve normalizes one raw type text into an expression. Unrecognized
// tokens degrade to Any and are returned so callers can surface
// UNKNOWN_TYPE_TOKEN warnings; resolution itself never fails, because the
// documentation vocabulary is not exhaustively enumerable.
//
// Accepted syntax, as found across documentation releases:
//
//	boolean                      single token
//	linear[3]                    counted group: tuple of three floats
//	string[]                     variable-length list
//	[linear, linear, linear]     bracketed tuple, possibly heterogeneous
//	[, boolean, float, ]         bracketed list-of notation (sentinel commas)
//	int | string                 alternatives
func (r *Resolver) Resolve(raw string) (Expr, []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Any{}, nil
	}

	var unknown []string
	alts := splitTopLevel(raw, '|')
	exprs := make([]Expr, 0, len(alts))
	for _, alt := range alts {
		exprs = append(exprs, r.resolveAlt(alt, &unknown))
	}
	return NewUnion(exprs...), unknown
}

func (r *Resolver) resolveAlt(s string, unknown *[]string) Expr {
	s = strings.TrimSpace(s)
	if s == "" {
		return Any{}
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return r.resolveGroup(s[1:len(s)-1], unknown)
	}

	// kind[] and kind[N] suffixes.
	if open := strings.Index(s, "["); open > 0 && strings.HasSuffix(s, "]") {
		base := s[:open]
		inner := strings.TrimSpace(s[open+1 : len(s)-1])
		if inner == "" {
			return Seq{Elem: r.resolveAlt(base, unknown)}
		}
		if n, err := strconv.Atoi(inner); err == nil && n > 0 {
			elem := r.resolveAlt(base, unknown)
			elems := make([]Expr, n)
			for i := range elems {
				elems[i] = elem
			}
			return Tuple{Elems: elems}
		}
	}

	token := strings.ToLower(s)
	if expr, ok := r.tokens[token]; ok {
		return expr
	}
	*unknown = append(*unknown, s)
	return Any{}
}

// resolveGroup handles the inside of a bracketed group. Sentinel empty
// items (from leading/trailing commas) mark the documentation's
// list-of notation: "[, boolean, float, ]" reads as a variable-length
// list of boolean-or-float values.
func (r *Resolver) resolveGroup(inner string, unknown *[]string) Expr {
	items := splitTopLevel(inner, ',')

	variadic := false
	members := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			variadic = true
			continue
		}
		members = append(members, item)
	}

	if len(members) == 0 {
		return Any{}
	}

	if variadic {
		alts := make([]Expr, 0, len(members))
		for _, m := range members {
			alts = append(alts, r.resolveAlt(m, unknown))
		}
		return Seq{Elem: NewUnion(alts...)}
	}

	if len(members) == 1 {
		return r.resolveAlt(members[0], unknown)
	}

	elems := make([]Expr, 0, len(members))
	for _, m := range members {
		elems = append(elems, r.resolveAlt(m, unknown))
	}
	return Tuple{Elems: elems}
}

// splitTopLevel splits on sep, ignoring separators nested inside
// brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// ArgumentTypes resolves every supported mode of an argument to its
// normalized expression, applying per-command overrides and the
// query-probe synthesis rule:
//
//   - a query-capable argument whose table gives no distinct query type
//     accepts either its create/edit value type or the boolean probe, so
//     its query type is Union(valueType, Flag);
//   - a query-only argument, or one with an explicit query segment, keeps
//     its directly resolved type with no Flag union.
//
// The returned warnings carry no path; the caller owns source
// attribution.
func (r *Resolver) ArgumentTypes(command string, arg *model.ArgumentRecord) (map[model.Mode]Expr, []model.Warning) {
	types := make(map[model.Mode]Expr, arg.Modes.Len())
	var warnings []model.Warning

	// An override is the final word on the type: it replaces the
	// documented text for every mode and suppresses query-probe
	// synthesis, since the registered type already reflects reality.
	if override, ok := r.Override(command, arg.LongName); ok {
		for _, m := range arg.Modes.Modes() {
			types[m] = override
		}
		return types, nil
	}

	for _, m := range arg.Modes.Modes() {
		expr, unknown := r.Resolve(arg.RawType(m))
		types[m] = expr
		for _, tok := range unknown {
			warnings = append(warnings, model.Warningf(model.WarnUnknownType, "",
				"argument %q: unknown type token %q resolved to Any", arg.LongName, tok))
		}
	}

	if arg.Modes.Has(model.ModeQuery) && !arg.ExplicitModes.Has(model.ModeQuery) {
		base, ok := types[model.ModeCreate]
		if !ok {
			base, ok = types[model.ModeEdit]
		}
		if ok {
			types[model.ModeQuery] = NewUnion(base, Flag{})
		}
	}

	return types, warnings
}

// ParameterType folds the per-mode expressions into the single annotation
// a call-site parameter carries: the union across every mode the argument
// supports, since the same parameter must satisfy whichever mode is
// active.
func ParameterType(types map[model.Mode]Expr, modes model.ModeSet) Expr {
	alts := make([]Expr, 0, len(types))
	for _, m := range modes.Modes() {
		if e, ok := types[m]; ok {
			alts = append(alts, e)
		}
	}
	return NewUnion(alts...)
}
