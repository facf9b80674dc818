// Package goytdlp invokes the extraction tool in-process through the
// go-ytdlp bindings.
package goytdlp

import (
	"context"
	"fmt"
	"time"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"
)

const progressInterval = 500 * time.Millisecond

// Client is the library-call backend.
type Client struct{}

// New prepares the backend. The bindings fetch a managed tool binary when
// none is on PATH, so this backend has no binary-path configuration.
func New() *Client {
	ytdlp.MustInstall(context.TODO(), nil)

	return &Client{}
}

// Fetch runs one tool invocation, mapping the binding's progress callback
// onto ProgressEvents. It blocks until the tool finishes.
func (c *Client) Fetch(ctx context.Context, spec extract.Spec, events chan<- extract.ProgressEvent) error {
	dl := ytdlp.New().
		Format(spec.FormatSelector()).
		Output(spec.OutputTemplate).
		NoPlaylist().
		MergeOutputFormat(extract.Container)

	if spec.Segment != nil {
		dl = dl.DownloadSections(spec.Segment.SectionSpec()).ForceKeyframesAtCuts()
	}

	if spec.CookieFile != "" {
		dl = dl.Cookies(spec.CookieFile)
	}

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.Status != ytdlp.ProgressStatusDownloading {
			return
		}

		events <- extract.Downloading(
			formatPercent(update.DownloadedBytes, update.TotalBytes),
			formatBytes(update.TotalBytes),
			formatSpeed(update.DownloadedBytes, update.Started),
			formatETA(update.ETA()),
		)
	})

	result, err := dl.Run(ctx, spec.URL)
	if err != nil {
		output := err.Error()
		if result != nil && result.Stderr != "" {
			output = result.Stderr
		}

		exErr := extract.Classify(output, err)
		events <- extract.Failed(exErr)

		return exErr
	}

	events <- extract.Finished(reportedFilename(result))

	return nil
}

// reportedFilename pulls the resolved output path out of the run result.
// Empty when the binding could not determine one; the resolver falls back to
// a directory scan in that case.
func reportedFilename(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}

	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 || info[0].Filename == nil {
		return ""
	}

	return *info[0].Filename
}

func formatPercent(downloaded, total int) string {
	if total <= 0 {
		return "N/A"
	}

	return fmt.Sprintf("%.1f%%", float64(downloaded)*100/float64(total))
}

func formatBytes(n int) string {
	if n <= 0 {
		return "N/A"
	}

	return humanize.Bytes(uint64(n))
}

func formatSpeed(downloaded int, started time.Time) string {
	if started.IsZero() || downloaded <= 0 {
		return "N/A"
	}

	elapsed := time.Since(started).Seconds()
	if elapsed <= 0 {
		return "N/A"
	}

	return humanize.Bytes(uint64(float64(downloaded)/elapsed)) + "/s"
}

func formatETA(eta time.Duration) string {
	if eta <= 0 {
		return "N/A"
	}

	return extract.FormatTimestamp(eta)
}
