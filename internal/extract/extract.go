// Package extract defines the contract between the download pipeline and the
// external extraction tool. The tool itself is opaque; the two backends under
// this package only differ in how they invoke it.
package extract

import (
	"context"
	"fmt"
	"time"
)

// OutputPattern is the tool's output template inside a job directory. The
// title is truncated to keep filenames within filesystem limits.
const OutputPattern = "%(title).200B.%(ext)s"

// Container is the container format every download is muxed into.
const Container = "mp4"

// Extractor invokes the external tool once for a job. The call blocks until
// the tool finishes; progress is emitted on events while it runs. The caller
// owns the channel and closes it after Fetch returns.
type Extractor interface {
	Fetch(ctx context.Context, spec Spec, events chan<- ProgressEvent) error
}

// Segment is a start/end sub-range of the source media. A nil End means
// "from Start to the end of the media".
type Segment struct {
	Start time.Duration
	End   *time.Duration
}

// SectionSpec renders the segment in the tool's download-sections syntax.
func (s Segment) SectionSpec() string {
	if s.End == nil {
		return fmt.Sprintf("*%s-inf", FormatTimestamp(s.Start))
	}

	return fmt.Sprintf("*%s-%s", FormatTimestamp(s.Start), FormatTimestamp(*s.End))
}

// Spec carries everything a backend needs for one invocation.
type Spec struct {
	URL            string
	Segment        *Segment
	OutputTemplate string
	CeilingBytes   int64
	CookieFile     string
}

// FormatSelector builds the tool's format string: best mp4 video+audio under
// the ceiling, then best mp4 under the ceiling, then best-anything under the
// ceiling. The ceiling here is advisory; delivery enforces it for real.
func (s Spec) FormatSelector() string {
	mb := s.CeilingBytes / (1024 * 1024)
	if mb <= 0 {
		return fmt.Sprintf("bestvideo[ext=%s]+bestaudio[ext=m4a]/best[ext=%s]/best", Container, Container)
	}

	return fmt.Sprintf(
		"bestvideo[ext=%s][filesize<%dM]+bestaudio[ext=m4a]/best[ext=%s][filesize<%dM]/best[filesize<%dM]",
		Container, mb, Container, mb, mb,
	)
}

// FormatTimestamp renders a duration as HH:MM:SS for the tool's section syntax.
func FormatTimestamp(d time.Duration) string {
	total := int64(d.Seconds())

	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Status tags a ProgressEvent.
type Status int

const (
	StatusDownloading Status = iota
	StatusFinished
	StatusFailed
)

// ProgressEvent is one tick of tool output. Downloading events carry the
// display fields; Finished carries the tool-reported filename (may be empty
// for backends that cannot report one); Failed carries the error.
type ProgressEvent struct {
	Status Status

	Percent   string
	TotalSize string
	Speed     string
	ETA       string

	Filename string
	Err      error
}

// Downloading builds a progress tick event.
func Downloading(percent, totalSize, speed, eta string) ProgressEvent {
	return ProgressEvent{Status: StatusDownloading, Percent: percent, TotalSize: totalSize, Speed: speed, ETA: eta}
}

// Finished builds the terminal success event.
func Finished(filename string) ProgressEvent {
	return ProgressEvent{Status: StatusFinished, Filename: filename}
}

// Failed builds the terminal failure event.
func Failed(err error) ProgressEvent {
	return ProgressEvent{Status: StatusFailed, Err: err}
}
