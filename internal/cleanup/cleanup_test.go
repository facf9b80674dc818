package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func makeJobDir(t *testing.T, root, name string, age time.Duration) string {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0o644))

	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "clip.mp4"), stamp, stamp))
	require.NoError(t, os.Chtimes(dir, stamp, stamp))

	return dir
}

func TestDeleteExpiredDirs(t *testing.T) {
	root := t.TempDir()
	expired := makeJobDir(t, root, "expired", 48*time.Hour)
	fresh := makeJobDir(t, root, "fresh", time.Minute)

	require.NoError(t, DeleteExpiredDirs(context.Background(), root, 24*time.Hour))

	require.NoDirExists(t, expired)
	require.DirExists(t, fresh)
}

func TestDeleteExpiredDirsKeepsActiveDownloads(t *testing.T) {
	root := t.TempDir()

	// Old directory, but one file inside was touched recently.
	dir := makeJobDir(t, root, "active", 48*time.Hour)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4.part"), []byte("y"), 0o644))

	require.NoError(t, DeleteExpiredDirs(context.Background(), root, 24*time.Hour))

	require.DirExists(t, dir)
}

func TestDeleteExpiredDirsIgnoresPlainFiles(t *testing.T) {
	root := t.TempDir()
	stray := filepath.Join(root, "stray.mp4")
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0o644))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stray, old, old))

	require.NoError(t, DeleteExpiredDirs(context.Background(), root, 24*time.Hour))

	require.FileExists(t, stray)
}

func TestDeleteExpiredDirsMissingRoot(t *testing.T) {
	require.NoError(t, DeleteExpiredDirs(context.Background(), filepath.Join(t.TempDir(), "nope"), time.Hour))
}
