package job

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestResolvePrefersReportedFilename(t *testing.T) {
	dir := t.TempDir()
	reported := filepath.Join(dir, "My Clip.mp4")
	other := filepath.Join(dir, "leftover.mp4")

	writeFile(t, reported, 100)
	writeFile(t, other, 200)

	artifact, err := Resolve(dir, reported)
	require.NoError(t, err)
	require.Equal(t, reported, artifact.Path)
	require.EqualValues(t, 100, artifact.SizeBytes)
}

func TestResolveFallsBackToNewestContainerFile(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "older.mp4")
	newer := filepath.Join(dir, "newer.mp4")

	writeFile(t, older, 10)
	writeFile(t, newer, 20)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	artifact, err := Resolve(dir, filepath.Join(dir, "does-not-exist.mp4"))
	require.NoError(t, err)
	require.Equal(t, newer, artifact.Path)
	require.EqualValues(t, 20, artifact.SizeBytes)
}

func TestResolveIgnoresNonContainerFiles(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "notes.txt"), 10)
	writeFile(t, filepath.Join(dir, "partial.mp4.part"), 10)

	_, err := Resolve(dir, "")
	require.ErrorIs(t, err, ErrNoArtifact)
}

func TestResolveEmptyDir(t *testing.T) {
	_, err := Resolve(t.TempDir(), "")
	require.ErrorIs(t, err, ErrNoArtifact)
}

func TestNewJobCreatesUniqueDirs(t *testing.T) {
	root := t.TempDir()

	a, err := New(root, 1, requestFor(t, "https://example.com/a"))
	require.NoError(t, err)

	b, err := New(root, 1, requestFor(t, "https://example.com/b"))
	require.NoError(t, err)

	require.NotEqual(t, a.Dir, b.Dir)
	require.DirExists(t, a.Dir)
	require.DirExists(t, b.Dir)
}
