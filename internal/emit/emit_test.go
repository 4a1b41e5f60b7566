package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubworks/cmdstub/internal/stub"
	"github.com/stubworks/cmdstub/internal/typemap"
)

func sampleStubs() []*stub.Stub {
	return []*stub.Stub{
		{
			Name:     "xform",
			Summary:  "Query or set transformation values.",
			Category: "Modify",
			Parameters: []stub.Parameter{
				{Name: "translation", Type: typemap.Tuple{Elems: []typemap.Expr{typemap.Scalar{Kind: typemap.Float}}}, Default: "..."},
			},
			Docs: []stub.ArgumentDoc{
				{Name: "translation", ModeList: "create"},
			},
			Queryable: true,
			Editable:  true,
		},
		{Name: "sphere", Category: "Modeling"},
		{Name: "cone", Category: "Modeling"},
	}
}

func TestWriteTreeLayout(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, Write(target, sampleStubs(), false))

	for _, path := range []string{
		"__init__.pyi",
		"modify/__init__.pyi",
		"modify/xform.pyi",
		"modeling/__init__.pyi",
		"modeling/sphere.pyi",
		"modeling/cone.pyi",
	} {
		_, err := os.Stat(filepath.Join(target, path))
		assert.NoError(t, err, path)
	}

	root, err := os.ReadFile(filepath.Join(target, "__init__.pyi"))
	require.NoError(t, err)
	assert.Equal(t, banner+"from . import modeling\nfrom . import modify\n", string(root))

	index, err := os.ReadFile(filepath.Join(target, "modeling", "__init__.pyi"))
	require.NoError(t, err)
	assert.Equal(t, banner+"from .cone import cone\nfrom .sphere import sphere\n", string(index))

	content, err := os.ReadFile(filepath.Join(target, "modify", "xform.pyi"))
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, banner)
	assert.Contains(t, text, "from typing import Any, List, Tuple, Union")
	assert.Contains(t, text, "def xform(")
}

func TestWriteConflict(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "leftover.txt"), []byte("old"), 0o644))

	err := Write(target, sampleStubs(), false)
	assert.ErrorIs(t, err, ErrOutputConflict)

	// Nothing was written.
	_, statErr := os.Stat(filepath.Join(target, "__init__.pyi"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteForceClearsTarget(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "leftover.txt"), []byte("old"), 0o644))

	require.NoError(t, Write(target, sampleStubs(), true))

	_, err := os.Stat(filepath.Join(target, "leftover.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(target, "__init__.pyi"))
	assert.NoError(t, err)
}

func TestWriteMissingTargetIsCreated(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "stubs")
	require.NoError(t, Write(target, sampleStubs(), false))
	_, err := os.Stat(filepath.Join(target, "__init__.pyi"))
	assert.NoError(t, err)
}

func TestWriteIsByteIdenticalAcrossRuns(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, Write(first, sampleStubs(), false))
	require.NoError(t, Write(second, sampleStubs(), false))

	firstBytes, err := os.ReadFile(filepath.Join(first, "modify", "xform.pyi"))
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(filepath.Join(second, "modify", "xform.pyi"))
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
}
