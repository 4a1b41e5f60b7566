package stub

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubworks/cmdstub/internal/model"
	"github.com/stubworks/cmdstub/internal/typemap"
)

func xformRecord() *model.CommandRecord {
	return &model.CommandRecord{
		Name:       "xform",
		Summary:    "Query or set transformation values.",
		Categories: []string{"Modify"},
		Undoable:   true,
		Queryable:  true,
		Editable:   true,
		Arguments: []model.ArgumentRecord{
			{
				LongName:  "translation",
				ShortName: "t",
				Modes:     model.ModeSet(0).With(model.ModeCreate).With(model.ModeEdit).With(model.ModeQuery),
				RawTypeByMode: map[model.Mode]string{
					model.ModeCreate: "linear[3]",
					model.ModeEdit:   "linear[3]",
					model.ModeQuery:  "linear[3]",
				},
				Description: "Translation values.",
			},
			{
				LongName:  "absolute",
				ShortName: "a",
				Modes:     model.ModeSet(0).With(model.ModeCreate),
				RawTypeByMode: map[model.Mode]string{
					model.ModeCreate: "boolean",
				},
				Description: "Perform absolute transformation.",
			},
		},
	}
}

func TestAssembleBothAliasStyles(t *testing.T) {
	resolver := typemap.NewResolver()
	s, warnings := Assemble(xformRecord(), resolver, Options{LongNames: true, ShortNames: true})
	require.Empty(t, warnings)

	require.Len(t, s.Parameters, 4)
	assert.Equal(t, "translation", s.Parameters[0].Name)
	assert.Equal(t, "t", s.Parameters[1].Name)
	assert.Equal(t, "absolute", s.Parameters[2].Name)
	assert.Equal(t, "a", s.Parameters[3].Name)

	// Long and short alias of the same argument share the type.
	assert.Equal(t, "Union[Tuple[float, float, float], bool]", s.Parameters[0].Type.Annotation())
	assert.Equal(t, s.Parameters[0].Type.Annotation(), s.Parameters[1].Type.Annotation())

	// One docstring entry per argument, under the long name.
	require.Len(t, s.Docs, 2)
	assert.Equal(t, "translation", s.Docs[0].Name)
	assert.Equal(t, "absolute", s.Docs[1].Name)

	assert.True(t, s.Editable)
	assert.True(t, s.Queryable)
}

func TestAssembleSingleAliasStyles(t *testing.T) {
	resolver := typemap.NewResolver()

	s, _ := Assemble(xformRecord(), resolver, Options{LongNames: true})
	require.Len(t, s.Parameters, 2)
	assert.Equal(t, "translation", s.Parameters[0].Name)
	assert.Equal(t, "absolute", s.Parameters[1].Name)

	s, _ = Assemble(xformRecord(), resolver, Options{ShortNames: true})
	require.Len(t, s.Parameters, 2)
	assert.Equal(t, "t", s.Parameters[0].Name)
	assert.Equal(t, "a", s.Parameters[1].Name)
}

func TestAssembleCollapsesIdenticalNames(t *testing.T) {
	cmd := &model.CommandRecord{
		Name: "tool",
		Arguments: []model.ArgumentRecord{
			{
				LongName:  "exists",
				ShortName: "exists",
				Modes:     model.ModeSet(0).With(model.ModeCreate),
				RawTypeByMode: map[model.Mode]string{
					model.ModeCreate: "boolean",
				},
			},
		},
	}
	s, _ := Assemble(cmd, typemap.NewResolver(), Options{LongNames: true, ShortNames: true})
	require.Len(t, s.Parameters, 1)
	assert.Equal(t, "exists", s.Parameters[0].Name)
}

func TestAssembleMissingShortName(t *testing.T) {
	cmd := &model.CommandRecord{
		Name: "tool",
		Arguments: []model.ArgumentRecord{
			{
				LongName: "verbose",
				Modes:    model.ModeSet(0).With(model.ModeCreate),
				RawTypeByMode: map[model.Mode]string{
					model.ModeCreate: "boolean",
				},
			},
		},
	}

	// An argument with no short alias emits its long name no matter
	// which alias styles are enabled.
	for name, opts := range map[string]Options{
		"both styles":      {LongNames: true, ShortNames: true},
		"long names only":  {LongNames: true},
		"short names only": {ShortNames: true},
	} {
		t.Run(name, func(t *testing.T) {
			s, _ := Assemble(cmd, typemap.NewResolver(), opts)
			require.Len(t, s.Parameters, 1)
			assert.Equal(t, "verbose", s.Parameters[0].Name)
		})
	}
}

func TestAssembleAttributesWarningsToSource(t *testing.T) {
	cmd := &model.CommandRecord{
		Name:       "tool",
		SourcePath: "tool.html",
		Arguments: []model.ArgumentRecord{
			{
				LongName: "mystery",
				Modes:    model.ModeSet(0).With(model.ModeCreate),
				RawTypeByMode: map[model.Mode]string{
					model.ModeCreate: "gadget",
				},
			},
		},
	}
	_, warnings := Assemble(cmd, typemap.NewResolver(), Options{LongNames: true})
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnUnknownType, warnings[0].Code)
	assert.Equal(t, "tool.html", warnings[0].Path)
}

func TestRenderFullStub(t *testing.T) {
	resolver := typemap.NewResolver()
	s, _ := Assemble(xformRecord(), resolver, Options{LongNames: true, ShortNames: true})

	got := Render(s)
	want := `def xform(*args: str, translation: Union[Tuple[float, float, float], bool] = ..., t: Union[Tuple[float, float, float], bool] = ..., absolute: bool = False, a: bool = False, edit: bool = False, query: bool = False) -> Any:
    r"""Query or set transformation values.

    translation: (create, edit, query) - Translation values.
    absolute: (create) - Perform absolute transformation.
    """
    ...
`
	assert.Equal(t, want, got)
}

func TestRenderProperties(t *testing.T) {
	resolver := typemap.NewResolver()
	s, _ := Assemble(xformRecord(), resolver, Options{LongNames: true, ShortNames: true})
	got := Render(s)

	// Header stays on one line.
	header, _, found := strings.Cut(got, "\n")
	require.True(t, found)
	assert.True(t, strings.HasSuffix(header, ") -> Any:"))

	// Only long names appear in the docstring.
	assert.NotContains(t, got, "t: (create")
	assert.NotContains(t, got, "a: (create")

	// No trailing whitespace on any line.
	for _, line := range strings.Split(got, "\n") {
		assert.Equal(t, strings.TrimRight(line, " \t"), line)
	}
}

func TestRenderShortOnlyKeepsDocstring(t *testing.T) {
	resolver := typemap.NewResolver()
	s, _ := Assemble(xformRecord(), resolver, Options{ShortNames: true})
	got := Render(s)

	// Parameters use the short aliases, but every argument is still
	// documented under its long name.
	assert.Contains(t, got, "def xform(*args: str, t: ")
	assert.Contains(t, got, ", a: bool = False")
	assert.Contains(t, got, "translation: (create, edit, query) - Translation values.")
	assert.Contains(t, got, "absolute: (create) - Perform absolute transformation.")
}

func TestRenderBareCommand(t *testing.T) {
	t.Run("no summary, no arguments", func(t *testing.T) {
		s := &Stub{Name: "nop"}
		got := Render(s)
		assert.Equal(t, "def nop(*args: str) -> Any:\n    ...\n", got)
	})

	t.Run("summary only", func(t *testing.T) {
		s := &Stub{Name: "nop", Summary: "Does nothing."}
		got := Render(s)
		assert.Equal(t, "def nop(*args: str) -> Any:\n    r\"\"\"Does nothing.\"\"\"\n    ...\n", got)
	})
}

func TestRenderDeterministic(t *testing.T) {
	resolver := typemap.NewResolver()
	opts := Options{LongNames: true, ShortNames: true}

	first, _ := Assemble(xformRecord(), resolver, opts)
	second, _ := Assemble(xformRecord(), resolver, opts)
	assert.Equal(t, Render(first), Render(second))
}
