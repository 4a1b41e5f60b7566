package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubworks/cmdstub/internal/config"
	"github.com/stubworks/cmdstub/internal/emit"
	"github.com/stubworks/cmdstub/internal/typemap"
)

const xformFixture = `<html>
<head><title>xform command</title></head>
<body>
<div id="banner">
<h1>xform</h1>
<table><tr><td>&nbsp;</td></tr><tr><td><a href="cat_Modify.html">Modify</a></td></tr></table>
</div>
<p id="synopsis"><code>xform([objects...])</code></p>
<p>xform is undoable, queryable, and editable.</p>
<p>Query or set transformation values. Return value: None.</p>
<table>
<tr><td><b>Long name (short name)</b></td><td><b>Argument types</b></td><td><b>Properties</b></td></tr>
<tr bgcolor="#EEEEEE">
<td><code><b>translation</b> (<b>t</b>)</code></td>
<td><code>linear[3]</code></td>
<td><img title="create"><img title="query"><img title="edit"></td>
</tr>
<tr><td colspan="3">Translation values.</td></tr>
</table>
</body>
</html>`

const polyWarpFixture = `---
command: polyWarp
category: Modeling
undoable: true
---

Warps the selected mesh.

| Long name (short name) | Type | Modes | Description |
|---|---|---|---|
| radius (r) | linear | C Q E | Warp falloff radius. |
`

func writeSourceTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"xform.html":          xformFixture,
		"plugins/polyWarp.md": polyWarpFixture,
		"blank.html":          `<html><head><title>blank</title></head><body></body></html>`,
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestRunGenerate(t *testing.T) {
	cfg := config.Default()
	cfg.SourceDir = writeSourceTree(t)
	cfg.TargetDir = t.TempDir()
	cfg.Jobs = 2

	summary, warnings, err := runGenerate(cfg, typemap.NewResolver())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, summary.Commands)
	assert.Equal(t, 1, summary.Skipped)

	xform, err := os.ReadFile(filepath.Join(cfg.TargetDir, "modify", "xform.pyi"))
	require.NoError(t, err)
	text := string(xform)
	assert.Contains(t, text, "def xform(*args: str, translation: Union[Tuple[float, float, float], bool] = ...")
	assert.Contains(t, text, "edit: bool = False, query: bool = False) -> Any:")
	assert.Contains(t, text, "translation: (create, edit, query) - Translation values.")

	warp, err := os.ReadFile(filepath.Join(cfg.TargetDir, "modeling", "polyWarp.pyi"))
	require.NoError(t, err)
	assert.Contains(t, string(warp), "def polyWarp(*args: str, radius:")

	root, err := os.ReadFile(filepath.Join(cfg.TargetDir, "__init__.pyi"))
	require.NoError(t, err)
	assert.Contains(t, string(root), "from . import modeling\nfrom . import modify\n")
}

func TestRunGenerateDeterministic(t *testing.T) {
	source := writeSourceTree(t)

	run := func() map[string]string {
		cfg := config.Default()
		cfg.SourceDir = source
		cfg.TargetDir = t.TempDir()
		_, _, err := runGenerate(cfg, typemap.NewResolver())
		require.NoError(t, err)

		out := make(map[string]string)
		err = filepath.Walk(cfg.TargetDir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel, _ := filepath.Rel(cfg.TargetDir, path)
			content, readErr := os.ReadFile(path)
			if readErr != nil {
				return readErr
			}
			out[filepath.ToSlash(rel)] = string(content)
			return nil
		})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, run(), run())
}

func TestRunGenerateOutputConflict(t *testing.T) {
	cfg := config.Default()
	cfg.SourceDir = writeSourceTree(t)
	cfg.TargetDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.TargetDir, "stale.pyi"), []byte("old"), 0o644))

	_, _, err := runGenerate(cfg, typemap.NewResolver())
	assert.ErrorIs(t, err, emit.ErrOutputConflict)

	cfg.ForceOverwrite = true
	_, _, err = runGenerate(cfg, typemap.NewResolver())
	assert.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(cfg.TargetDir, "stale.pyi"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunGenerateUnparsableDocWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.html"),
		[]byte(`<html><head><title>broken command</title></head><body><p>no banner</p></body></html>`), 0o644))

	cfg := config.Default()
	cfg.SourceDir = dir
	cfg.TargetDir = t.TempDir()

	summary, warnings, err := runGenerate(cfg, typemap.NewResolver())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Commands)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, warnings, 1)
	assert.Equal(t, "DOC_UNPARSABLE", warnings[0].Code)
}
