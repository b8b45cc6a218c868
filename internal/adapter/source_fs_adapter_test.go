package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func unitPaths(units []*syntax.SourceUnit) []string {
	paths := make([]string, 0, len(units))
	for _, u := range units {
		paths = append(paths, filepath.Base(string(u.Path)))
	}

	return paths
}

func newCollector() *LocalSourceFSAdapter {
	return NewLocalSourceFSAdapter(NewLocalSourceFileAdapter())
}

func TestCollectRecursive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/a.ex":            "defmodule A do\nend",
		"lib/nested/b.ex":     "defmodule B do\nend",
		"test/c_test.exs":     "defmodule CTest do\nend",
		"lib/readme.md":       "not a source file",
		"_build/ignored.ex":   "defmodule Ignored do\nend",
		"deps/dep.ex":         "defmodule Dep do\nend",
		".git/hooks/weird.ex": "defmodule Weird do\nend",
	})

	units, err := newCollector().Collect(context.Background(), []m.Path{m.Path(root + "/...")})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.ex", "b.ex", "c_test.exs"}, unitPaths(units))
}

func TestCollectNonRecursiveDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ex":        "defmodule A do\nend",
		"nested/b.ex": "defmodule B do\nend",
	})

	units, err := newCollector().Collect(context.Background(), []m.Path{m.Path(root)})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.ex"}, unitPaths(units))
}

func TestCollectSingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ex": "defmodule A do\nend",
	})

	units, err := newCollector().Collect(context.Background(), []m.Path{m.Path(filepath.Join(root, "a.ex"))})
	require.NoError(t, err)

	require.Len(t, units, 1)
	require.Len(t, units[0].Modules, 1)
	assert.Equal(t, "A", units[0].Modules[0].Name)
}

func TestCollectExcludePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/a.ex":           "defmodule A do\nend",
		"lib/generated/g.ex": "defmodule G do\nend",
	})

	units, err := newCollector().Collect(
		context.Background(),
		[]m.Path{m.Path(root + "/...")},
		"generated",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.ex"}, unitPaths(units))
}

func TestCollectDeduplicatesOverlappingPaths(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/a.ex": "defmodule A do\nend",
	})

	units, err := newCollector().Collect(context.Background(), []m.Path{
		m.Path(root + "/..."),
		m.Path(filepath.Join(root, "lib", "a.ex")),
	})
	require.NoError(t, err)

	assert.Len(t, units, 1)
}

func TestCollectParseFailureAborts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"lib/a.ex":   "defmodule A do\nend",
		"lib/bad.ex": "defmodule Broken do\n",
	})

	_, err := newCollector().Collect(context.Background(), []m.Path{m.Path(root + "/...")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse source")
}

func TestCollectMissingPath(t *testing.T) {
	_, err := newCollector().Collect(context.Background(), []m.Path{"does/not/exist"})
	require.Error(t, err)
}
