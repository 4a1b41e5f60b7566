package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubworks/cmdstub/internal/model"
)

const polyWarpPage = `---
command: polyWarp
category: Modeling
undoable: true
queryable: true
editable: true
---

Warps the selected mesh toward a target shape.

Useful for corrective blend workflows.

| Long name (short name) | Type | Modes | Description |
|---|---|---|---|
| radius (r) | linear | C Q E | Warp falloff radius. |
| weights (w) | float[] | C Q E M | Per-vertex warp weights. |
| worldSpace (ws) | boolean | C | Operate in world space. |
| envelope (en) | string; query: boolean | C Q | Envelope attribute name. |
`

func TestParseMarkdownCommandPage(t *testing.T) {
	result, err := Parse(polyWarpPage, "plugins/polyWarp.md")
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	cmd := result.Command
	assert.Equal(t, "polyWarp", cmd.Name)
	assert.Equal(t, []string{"Modeling"}, cmd.Categories)
	assert.True(t, cmd.Undoable)
	assert.True(t, cmd.Queryable)
	assert.True(t, cmd.Editable)
	assert.Contains(t, cmd.Summary, "Warps the selected mesh")
	assert.Contains(t, cmd.Summary, "corrective blend")

	require.Len(t, cmd.Arguments, 4)

	radius := cmd.Arguments[0]
	assert.Equal(t, "radius", radius.LongName)
	assert.Equal(t, "r", radius.ShortName)
	assert.True(t, radius.Modes.Has(model.ModeCreate))
	assert.True(t, radius.Modes.Has(model.ModeQuery))
	assert.True(t, radius.Modes.Has(model.ModeEdit))
	assert.Equal(t, "linear", radius.RawType(model.ModeCreate))

	weights := cmd.Arguments[1]
	assert.True(t, weights.Multiuse)
	assert.Equal(t, "create, edit, query, multiuse", weights.DocModes())

	envelope := cmd.Arguments[3]
	assert.Equal(t, "string", envelope.RawType(model.ModeCreate))
	assert.Equal(t, "boolean", envelope.RawType(model.ModeQuery))
	assert.True(t, envelope.ExplicitModes.Has(model.ModeQuery))
	assert.False(t, envelope.ExplicitModes.Has(model.ModeCreate))
}

func TestParseMarkdownFrontmatterFailures(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no frontmatter", "Just a paragraph.\n"},
		{"unclosed frontmatter", "---\ncommand: x\n"},
		{"missing command", "---\ncategory: Modeling\n---\n\nText.\n"},
		{"invalid yaml", "---\ncommand: [unterminated\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.page, "plugins/broken.md")
			var unparsable *UnparsableError
			assert.True(t, errors.As(err, &unparsable))
		})
	}
}

func TestParseMarkdownBareCommand(t *testing.T) {
	page := `---
command: polyNoop
category: Modeling
---

Does nothing, successfully.
`
	result, err := Parse(page, "plugins/polyNoop.md")
	require.NoError(t, err)

	cmd := result.Command
	assert.Equal(t, "polyNoop", cmd.Name)
	assert.Empty(t, cmd.Arguments)
	assert.False(t, cmd.SupportsQuery())
	assert.False(t, cmd.SupportsEdit())
}

func TestParseMarkdownFallbackCategory(t *testing.T) {
	page := `---
command: polyNoop
---

Does nothing.
`
	result, err := Parse(page, "plugins/polyNoop.md")
	require.NoError(t, err)

	assert.Equal(t, "plugins", result.Command.Category())

	var codes []string
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, model.WarnNoCategory)
}

func TestParseMarkdownDroppedRow(t *testing.T) {
	page := `---
command: polyWarp
category: Modeling
---

Summary.

| Long name (short name) | Type | Modes | Description |
|---|---|---|---|
| radius (r) | linear | C | Good row. |
|  | linear | C | No name at all. |
| ghost (g) | linear |  | No modes. |
`
	result, err := Parse(page, "plugins/polyWarp.md")
	require.NoError(t, err)

	require.Len(t, result.Command.Arguments, 1)
	assert.Equal(t, "radius", result.Command.Arguments[0].LongName)

	dropped := 0
	for _, w := range result.Warnings {
		if w.Code == model.WarnRowUnparsable {
			dropped++
		}
	}
	assert.Equal(t, 2, dropped)
}
