// Package stub assembles call signatures from extracted command records
// and renders them as Python stub declarations.
package stub

import (
	"github.com/stubworks/cmdstub/internal/model"
	"github.com/stubworks/cmdstub/internal/typemap"
)

// Options selects which alias styles the emitted parameters use. At
// least one must be enabled; config validation enforces that before any
// document is processed.
type Options struct {
	LongNames  bool
	ShortNames bool
}

// Parameter is one keyword parameter of an assembled signature.
type Parameter struct {
	Name    string
	Type    typemap.Expr
	Default string
}

// ArgumentDoc is one docstring entry. Entries exist per argument, not
// per parameter: an argument is documented once under its long name no
// matter which alias styles its parameters use.
type ArgumentDoc struct {
	Name     string
	ModeList string
	Doc      string
}

// Stub is a fully assembled, render-ready command declaration.
type Stub struct {
	Name       string
	Summary    string
	Category   string
	Parameters []Parameter
	Docs       []ArgumentDoc
	Editable   bool
	Queryable  bool
}

// Assemble folds a command record and its resolved argument types into a
// render-ready stub. Table order is preserved; each argument contributes
// one parameter per enabled alias style, except that identical long and
// short names collapse to a single parameter and an argument with no
// short alias emits its long name regardless of configuration. The
// parameter type is the union across every mode the argument supports,
// so one annotation covers whichever calling convention is active.
func Assemble(cmd *model.CommandRecord, resolver *typemap.Resolver, opts Options) (*Stub, []model.Warning) {
	s := &Stub{
		Name:      cmd.Name,
		Summary:   cmd.Summary,
		Category:  cmd.Category(),
		Editable:  cmd.SupportsEdit(),
		Queryable: cmd.SupportsQuery(),
	}
	var warnings []model.Warning

	for i := range cmd.Arguments {
		arg := &cmd.Arguments[i]

		types, argWarnings := resolver.ArgumentTypes(cmd.Name, arg)
		for _, w := range argWarnings {
			w.Path = cmd.SourcePath
			warnings = append(warnings, w)
		}
		paramType := typemap.ParameterType(types, arg.Modes)

		addParam := func(name string) {
			s.Parameters = append(s.Parameters, Parameter{
				Name:    name,
				Type:    paramType,
				Default: typemap.Placeholder(paramType),
			})
		}

		switch {
		case arg.ShortName == "":
			// No short alias: the long name is the only way to pass the
			// argument, so it is emitted even in a short-names-only run.
			addParam(arg.LongName)
		case opts.LongNames && opts.ShortNames && arg.LongName == arg.ShortName:
			addParam(arg.LongName)
		default:
			if opts.LongNames {
				addParam(arg.LongName)
			}
			if opts.ShortNames {
				addParam(arg.ShortName)
			}
		}

		s.Docs = append(s.Docs, ArgumentDoc{
			Name:     arg.LongName,
			ModeList: arg.DocModes(),
			Doc:      arg.Description,
		})
	}

	return s, warnings
}
