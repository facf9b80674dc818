package extract

import (
	"fmt"
	"strings"
)

// Kind categorizes an extraction failure so the bot can answer with a
// distinct message per category.
type Kind string

const (
	// KindUnsupportedURL means the tool does not know the site.
	KindUnsupportedURL Kind = "unsupported_url"
	// KindUnavailable means the video exists but cannot be fetched (private,
	// removed, region-locked).
	KindUnavailable Kind = "unavailable"
	// KindUnextractable means the tool found the page but could not pull
	// video information out of it.
	KindUnextractable Kind = "unextractable"
	// KindGeneric covers every other tool-reported failure.
	KindGeneric Kind = "generic"
)

// ExtractionError is a failure reported by the tool itself.
type ExtractionError struct {
	Kind   Kind
	Output string // raw tool error text, shown to the user for KindGeneric
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Output)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InvocationError means the tool could not be run at all: binary missing,
// process crashed before producing a tool-level error.
type InvocationError struct {
	Path string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to invoke %s: %v", e.Path, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Classify maps raw tool error output onto an ExtractionError kind. The
// marker strings are the ones yt-dlp has used for years; anything
// unrecognized stays generic with the raw text attached.
func Classify(output string, err error) *ExtractionError {
	kind := KindGeneric

	switch {
	case strings.Contains(output, "Unsupported URL"):
		kind = KindUnsupportedURL
	case strings.Contains(output, "Video unavailable"):
		kind = KindUnavailable
	case strings.Contains(output, "Unable to extract"):
		kind = KindUnextractable
	}

	return &ExtractionError{Kind: kind, Output: strings.TrimSpace(output), Err: err}
}
