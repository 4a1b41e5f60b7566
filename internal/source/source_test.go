package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"xform.html",
		"sphere.HTM",
		"plugins/polyWarp.md",
		"notes.txt",
		".hidden/skipme.html",
		"style.css",
	}
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	docs, err := List(dir)
	require.NoError(t, err)

	var rels []string
	for _, d := range docs {
		rels = append(rels, d.RelativePath)
	}
	assert.Equal(t, []string{"plugins/polyWarp.md", "sphere.HTM", "xform.html"}, rels)

	for _, d := range docs {
		_, err := os.Stat(d.Path)
		assert.NoError(t, err)
	}
}

func TestListMissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListEmptyDir(t *testing.T) {
	docs, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
