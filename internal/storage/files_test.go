package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Exists(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore()

	path := filepath.Join(dir, "movie.mkv")
	assert.False(t, store.Exists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, store.Exists(path))
}

func TestFileStore_EnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	store := NewFileStore()

	require.NoError(t, store.EnsureDir(dir))
	require.NoError(t, store.EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_CreatePartAndPromote(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "Show", "Staffel 01", "S01E01 - Pilot.mkv")
	store := NewFileStore()

	file, err := store.CreatePart(dest)
	require.NoError(t, err)
	_, err = file.WriteString("payload")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.True(t, store.Exists(PartPath(dest)))
	assert.False(t, store.Exists(dest))

	require.NoError(t, store.Promote(dest))

	assert.False(t, store.Exists(PartPath(dest)))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestFileStore_CreatePartTruncatesStalePart(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "movie.mkv")
	require.NoError(t, os.WriteFile(PartPath(dest), []byte("stale leftover bytes"), 0o644))

	store := NewFileStore()
	file, err := store.CreatePart(dest)
	require.NoError(t, err)
	_, err = file.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	data, err := os.ReadFile(PartPath(dest))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileStore_PromoteWithoutPart(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing.mkv")
	err := NewFileStore().Promote(dest)
	assert.Error(t, err)
	assert.False(t, NewFileStore().Exists(dest))
}

func TestPartPath(t *testing.T) {
	assert.Equal(t, "/M/Test.mkv.part", PartPath("/M/Test.mkv"))
}
