package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "小说.txt")

	require.NoError(t, WriteTextFile(path, "第1章: 一\n\n正文\n\n"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "第1章: 一\n\n正文\n\n", string(b))

	_, err = os.Stat(path + partSuffix)
	assert.True(t, os.IsNotExist(err), "no .part file may remain")
}

func TestWriteTextFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, WriteTextFile(path, ""))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteTextFileMissingDir(t *testing.T) {
	err := WriteTextFile(filepath.Join(t.TempDir(), "nope", "a.txt"), "x")
	assert.Error(t, err)
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")

	assert.Equal(t, path, UniquePath(path))

	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.Equal(t, filepath.Join(dir, "book_1.txt"), UniquePath(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "book_1.txt"), nil, 0644))
	assert.Equal(t, filepath.Join(dir, "book_2.txt"), UniquePath(path))
}

func TestCleanupPartialFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt.part"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("y"), 0644))

	removed := CleanupPartialFiles(dir)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt.part")}, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.txt", entries[0].Name())
}

func TestRemoveIfEmpty(t *testing.T) {
	root := t.TempDir()
	empty := filepath.Join(root, "out")
	require.NoError(t, os.Mkdir(empty, 0755))

	assert.True(t, RemoveIfEmpty(empty))

	_, err := os.Stat(empty)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.txt"), nil, 0644))
	assert.False(t, RemoveIfEmpty(root))
	assert.False(t, RemoveIfEmpty("."))
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.50 KB", Human(1536))
	assert.Equal(t, "2.00 MB", Human(2<<20))
	assert.Equal(t, "1.00 GB", Human(1<<30))
}
