// Package slugs canonicalizes documentation category names into output
// path components. Category directories double as Python package names,
// so slugs must be valid Python identifiers: lowercase, underscores for
// separators, never digit-leading.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// CategorySlug converts a documentation category name into the package
// directory name that holds its stubs. "Effects" -> "effects",
// "General Commands" -> "general_commands", "3D Paint" -> "_3d_paint".
func CategorySlug(name string) string {
	s := goslug.Make(name)
	if s == "" {
		s = strings.ToLower(strings.TrimSpace(name))
	}
	s = strings.ReplaceAll(s, "-", "_")
	s = collapseUnderscores(s)
	if s == "" {
		return "uncategorized"
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	prev := false
	for _, r := range s {
		if r == '_' {
			if prev || b.Len() == 0 {
				continue
			}
			prev = true
		} else {
			prev = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSuffix(b.String(), "_")
}
