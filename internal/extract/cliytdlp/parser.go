package cliytdlp

import (
	"regexp"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
)

var (
	progressLine    = regexp.MustCompile(`\[download\]\s+(\d+\.?\d*%)\s+of\s+~?\s*(\S+)\s+at\s+(\S+)\s+ETA\s+(\S+)`)
	destinationLine = regexp.MustCompile(`\[download\]\s+Destination:\s+(.+)`)
	mergerLine      = regexp.MustCompile(`\[Merger\]\s+Merging formats into "(.+)"`)
	alreadyLine     = regexp.MustCompile(`\[download\]\s+(.+?)\s+has already been downloaded`)
)

// ParseProgress turns one "--newline" progress line into a Downloading
// event. Non-progress lines report false.
func ParseProgress(line string) (extract.ProgressEvent, bool) {
	m := progressLine.FindStringSubmatch(line)
	if m == nil {
		return extract.ProgressEvent{}, false
	}

	return extract.Downloading(m[1], m[2], m[3], m[4]), true
}

// ParseDestination extracts an output path the tool mentioned on stdout:
// per-stream destination lines, the merger line naming the muxed container,
// or the already-downloaded notice.
func ParseDestination(line string) (string, bool) {
	if m := mergerLine.FindStringSubmatch(line); m != nil {
		return m[1], true
	}

	if m := destinationLine.FindStringSubmatch(line); m != nil {
		return m[1], true
	}

	if m := alreadyLine.FindStringSubmatch(line); m != nil {
		return m[1], true
	}

	return "", false
}
