// Package cleanup reclaims disk from abandoned job directories, such as
// oversized artifacts kept after a size-ceiling refusal.
package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/clipfetch/clipfetch_bot/internal/logctx"
)

// DeleteExpiredDirs removes job directories under root whose contents are
// older than keepDuration. Live jobs are safe as long as keepDuration
// comfortably exceeds any plausible download time.
func DeleteExpiredDirs(ctx context.Context, root string, keepDuration time.Duration) error {
	logger := logctx.LoggerFromContext(ctx)
	now := time.Now()

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		logger.Error("Failed to read download root", "dir", root, "err", err)

		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirPath := filepath.Join(root, entry.Name())

		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue // already deleted
			}

			logger.Error("Failed to stat job directory", "dir", dirPath, "err", err)

			return err
		}

		age := now.Sub(newestModTime(dirPath, info.ModTime()))
		if age <= keepDuration {
			continue
		}

		if err := os.RemoveAll(dirPath); err != nil {
			logger.Error("Failed to delete expired job directory", "dir", dirPath, "err", err)

			return err
		}

		logger.Info("Deleted expired job directory", "dir", dirPath, "age", age.Round(time.Second).String())
	}

	return nil
}

// Run sweeps on a fixed interval until the context is cancelled.
func Run(ctx context.Context, root string, keepDuration, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := DeleteExpiredDirs(ctx, root, keepDuration); err != nil {
				logctx.LoggerFromContext(ctx).Error("Cleanup sweep failed", "err", err)
			}
		}
	}
}

// newestModTime guards against deleting a directory whose files are still
// being written: the directory's own mtime can predate a long download.
func newestModTime(dirPath string, fallback time.Time) time.Time {
	newest := fallback

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return newest
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	return newest
}
