package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeOfSumsNestedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), 1)
	writeFile(t, filepath.Join(root, "d1", "b"), 20)
	writeFile(t, filepath.Join(root, "d1", "d2", "c"), 300)
	writeFile(t, filepath.Join(root, "d1", "d2", "d3", "d4", "d"), 4000)
	mkdir(t, filepath.Join(root, "empty", "deeper"))

	size, err := newTestWalker(t).SizeOf(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, uint64(4321), size)
}

func TestSizeOfDoesNotDependOnConcurrency(t *testing.T) {
	root := t.TempDir()
	var expected uint64
	for i, name := range []string{"x", "y/z", "y/w/v", "u/t/s/r", "q"} {
		writeFile(t, filepath.Join(root, name, "file"), (i+1)*123)
		expected += uint64((i + 1) * 123)
	}

	for _, limit := range []int{1, 2, 64} {
		w, err := New(Config{MaxConcurrency: limit})
		require.NoError(t, err)

		size, err := w.SizeOf(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, expected, size, "max concurrency %d", limit)
	}
}

func TestSizeOfRegularFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file")
	writeFile(t, p, 42)

	size, err := newTestWalker(t).SizeOf(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), size)
}

func TestSizeOfMissingPathIsZero(t *testing.T) {
	size, err := newTestWalker(t).SizeOf(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestSizeOfDanglingSymlinkIsZero(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real"), 8)
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))

	size, err := newTestWalker(t).SizeOf(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), size)
}

func TestSizeOfFollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	writeFile(t, filepath.Join(elsewhere, "blob"), 16)
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "blob"), filepath.Join(root, "link")))

	size, err := newTestWalker(t).SizeOf(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), size)
}
