package job

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
)

// ErrNoArtifact means the tool claimed success but no output file could be
// located.
var ErrNoArtifact = errors.New("no output produced")

// Artifact is the resolved output file, exclusively owned by the job until
// it is handed to delivery.
type Artifact struct {
	Path      string
	SizeBytes int64
}

// Resolve locates the job's output file. The tool-reported filename wins
// when it exists on disk; otherwise the job directory is scanned for the
// newest container file. The scan is safe here only because every job owns
// its directory exclusively.
func Resolve(dir, reported string) (Artifact, error) {
	if reported != "" {
		if info, err := os.Stat(reported); err == nil && !info.IsDir() {
			return Artifact{Path: reported, SizeBytes: info.Size()}, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to scan job directory: %w", err)
	}

	var newest Artifact

	var found bool

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "."+extract.Container) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !found || newerThan(info, newest.Path) {
			newest = Artifact{Path: path, SizeBytes: info.Size()}
			found = true
		}
	}

	if !found {
		return Artifact{}, ErrNoArtifact
	}

	return newest, nil
}

func newerThan(info os.FileInfo, currentPath string) bool {
	current, err := os.Stat(currentPath)
	if err != nil {
		return true
	}

	return info.ModTime().After(current.ModTime())
}
