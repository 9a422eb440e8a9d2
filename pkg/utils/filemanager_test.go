package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Catalogue.cs")

		require.NoError(t, WriteFileAtomic(path, []byte("namespace X {}\n"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "namespace X {}\n", string(data))
		assertNoTempFiles(t, dir)
	})

	t.Run("overwrites existing content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Catalogue.cs")
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old ", 100)), 0o644))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		assertNoTempFiles(t, dir)
	})

	t.Run("missing directory leaves nothing behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "missing", "Catalogue.cs")

		err := WriteFileAtomic(path, []byte("x"), 0o644)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create temp file")
		assert.NoFileExists(t, path)
		assertNoTempFiles(t, dir)
	})

	t.Run("rename onto a directory fails and cleans up", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "Catalogue.cs")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("k"), 0o644))

		err := WriteFileAtomic(target, []byte("x"), 0o644)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rename")
		assertNoTempFiles(t, dir)
	})
}

func TestTempPath(t *testing.T) {
	a := TempPath(filepath.Join("out", "Catalogue.cs"))
	b := TempPath(filepath.Join("out", "Catalogue.cs"))

	assert.NotEqual(t, a, b)
	assert.Equal(t, "out", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), ".Catalogue.cs."))
	assert.True(t, strings.HasSuffix(a, ".tmp"))
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
