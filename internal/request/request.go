// Package request classifies and parses the arguments of a download command.
package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingURL is returned when the command carries no arguments at all.
var ErrMissingURL = errors.New("missing URL")

// ErrInvalidURL is returned when the first token is not an http(s) URL.
var ErrInvalidURL = errors.New("invalid URL")

// Request is one user-initiated download request. Start and End are nil when
// the user did not ask for a segment. End is only ever set when Start is.
type Request struct {
	URL   string
	Start *time.Duration
	End   *time.Duration
}

// FullVideo reports whether no segment trim was requested.
func (r Request) FullVideo() bool {
	return r.Start == nil
}

// Warning is a non-fatal parse problem. The job continues without the
// offending argument; the text is relayed to the user as-is.
type Warning struct {
	Token string
	Text  string
}

// IsValidURL reports whether s looks like a URL we are willing to hand to
// the extraction tool. Anything more thorough is the tool's own business.
func IsValidURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsTimeLike reports whether s plausibly denotes a time marker: it either
// contains a colon or is entirely decimal digits. Values are not bounded,
// so "99:99" passes.
func IsTimeLike(s string) bool {
	if s == "" {
		return false
	}

	if strings.Contains(s, ":") {
		return true
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// ParseTimestamp converts "SS", "MM:SS" or "HH:MM:SS" into a duration.
func ParseTimestamp(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("too many time components in %q", s)
	}

	var total int64

	for _, p := range parts {
		if p == "" {
			return 0, fmt.Errorf("empty time component in %q", s)
		}

		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time component %q: %w", p, err)
		}

		total = total*60 + n
	}

	return time.Duration(total) * time.Second, nil
}

// Parse interprets the token list following a download command. The first
// token is the URL; the second is a start marker only when it is time-like;
// the third is an end marker only when a start was accepted. Rejected time
// tokens produce warnings, never errors.
func Parse(args []string) (Request, []Warning, error) {
	if len(args) == 0 {
		return Request{}, nil, ErrMissingURL
	}

	req := Request{URL: args[0]}
	if !IsValidURL(req.URL) {
		return Request{}, nil, fmt.Errorf("%w: %s", ErrInvalidURL, req.URL)
	}

	var warnings []Warning

	if len(args) >= 2 {
		token := args[1]
		if start, err := parseTimeToken(token); err == nil {
			req.Start = &start
		} else {
			warnings = append(warnings, Warning{
				Token: token,
				Text:  fmt.Sprintf("⚠️ '%s' doesn't look like a valid start time (e.g., MM:SS). Proceeding without start time.", token),
			})
		}
	}

	// An end marker without an accepted start marker is ignored by policy.
	if len(args) >= 3 && req.Start != nil {
		token := args[2]
		if end, err := parseTimeToken(token); err == nil {
			req.End = &end
		} else {
			warnings = append(warnings, Warning{
				Token: token,
				Text:  fmt.Sprintf("⚠️ '%s' doesn't look like a valid end time. Will download from the start time to the end.", token),
			})
		}
	}

	return req, warnings, nil
}

func parseTimeToken(token string) (time.Duration, error) {
	if !IsTimeLike(token) {
		return 0, fmt.Errorf("token %q is not time-like", token)
	}

	return ParseTimestamp(token)
}
