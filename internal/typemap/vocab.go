package typemap

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtinTokens is the core vocabulary mapping documentation type tokens
// to semantic expressions. It is data, not branching logic: new
// documentation releases add tokens here (or in a user extension file)
// without touching the resolution algorithm.
var builtinTokens = map[string]Expr{
	"boolean": Scalar{Bool},
	"bool":    Scalar{Bool},
	"int":     Scalar{Int},
	"uint":    Scalar{Int},
	"int64":   Scalar{Int},
	"float":   Scalar{Float},
	"double":  Scalar{Float},
	"linear":  Scalar{Float},
	"angle":   Scalar{Float},
	"time":    Scalar{Float},
	"string":  Scalar{String},
	"script":  Scalar{String},
	"name":    Scalar{ObjectName},
	// Range tokens are shorthand for a start/end pair.
	"timerange":  Tuple{Elems: []Expr{Scalar{Float}, Scalar{Float}}},
	"floatrange": Tuple{Elems: []Expr{Scalar{Float}, Scalar{Float}}},
}

// Resolver maps raw documentation type text to normalized expressions.
// A Resolver is immutable once handed to the pipeline; extension files
// are loaded before any document is processed.
type Resolver struct {
	tokens    map[string]Expr
	overrides map[string]map[string]Expr
}

// NewResolver returns a resolver carrying the built-in vocabulary.
func NewResolver() *Resolver {
	tokens := make(map[string]Expr, len(builtinTokens))
	for k, v := range builtinTokens {
		tokens[k] = v
	}
	return &Resolver{
		tokens:    tokens,
		overrides: make(map[string]map[string]Expr),
	}
}

// extensionFile is the on-disk shape of a vocabulary extension file.
//
//	tokens:
//	  matrix: float[16]
//	overrides:
//	  curve:
//	    point: linear[3] | linear[3][]
type extensionFile struct {
	Tokens    map[string]string            `yaml:"tokens"`
	Overrides map[string]map[string]string `yaml:"overrides"`
}

// LoadExtensions merges a YAML extension file into the vocabulary.
// Extension values are written in the same type-text syntax the
// documentation uses and are resolved through the same tokenizer; a
// value that does not resolve cleanly is a load error, since extension
// files exist precisely to eliminate unknown tokens.
func (r *Resolver) LoadExtensions(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read vocabulary file: %w", err)
	}

	var ext extensionFile
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return fmt.Errorf("parse vocabulary file %s: %w", path, err)
	}

	// Register tokens first so overrides may refer to them.
	for token, raw := range ext.Tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return fmt.Errorf("vocabulary file %s: empty token key", path)
		}
		expr, unknown := r.Resolve(raw)
		if len(unknown) > 0 {
			return fmt.Errorf("vocabulary file %s: token %q uses unknown tokens: %s",
				path, token, strings.Join(unknown, ", "))
		}
		r.tokens[token] = expr
	}

	for command, args := range ext.Overrides {
		for arg, raw := range args {
			expr, unknown := r.Resolve(raw)
			if len(unknown) > 0 {
				return fmt.Errorf("vocabulary file %s: override %s.%s uses unknown tokens: %s",
					path, command, arg, strings.Join(unknown, ", "))
			}
			if r.overrides[command] == nil {
				r.overrides[command] = make(map[string]Expr)
			}
			r.overrides[command][arg] = expr
		}
	}

	return nil
}

// Override returns the override expression for a command argument, if one
// was registered.
func (r *Resolver) Override(command, longName string) (Expr, bool) {
	args, ok := r.overrides[command]
	if !ok {
		return nil, false
	}
	expr, ok := args[longName]
	return expr, ok
}

// Tokens returns the known vocabulary tokens in sorted order, for the
// `cmdstub vocab` maintenance listing.
func (r *Resolver) Tokens() []string {
	out := make([]string, 0, len(r.tokens))
	for t := range r.tokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TokenExpr returns the expression a single vocabulary token resolves to.
func (r *Resolver) TokenExpr(token string) (Expr, bool) {
	e, ok := r.tokens[strings.ToLower(strings.TrimSpace(token))]
	return e, ok
}
