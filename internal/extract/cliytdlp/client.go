// Package cliytdlp invokes the extraction tool as a subprocess and parses
// its line-oriented progress output.
package cliytdlp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
)

// Client is the subprocess backend. Path is the tool binary, resolved
// through PATH when not absolute.
type Client struct {
	Path string
}

func New(path string) *Client {
	return &Client{Path: path}
}

// Fetch runs the tool once and blocks until it exits. Progress lines on
// stdout become ProgressEvents; stderr is buffered for error classification.
func (c *Client) Fetch(ctx context.Context, spec extract.Spec, events chan<- extract.ProgressEvent) error {
	cmd := exec.CommandContext(ctx, c.Path, buildArgs(spec)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		invErr := &extract.InvocationError{Path: c.Path, Err: err}
		events <- extract.Failed(invErr)

		return invErr
	}

	if err := cmd.Start(); err != nil {
		invErr := &extract.InvocationError{Path: c.Path, Err: err}
		events <- extract.Failed(invErr)

		return invErr
	}

	lastFile := c.consumeOutput(stdout, events)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			invErr := &extract.InvocationError{Path: c.Path, Err: err}
			events <- extract.Failed(invErr)

			return invErr
		}

		exErr := extract.Classify(stderr.String(), err)
		events <- extract.Failed(exErr)

		return exErr
	}

	events <- extract.Finished(lastFile)

	return nil
}

// consumeOutput scans tool stdout until EOF, emitting progress ticks and
// tracking the most recent output path the tool mentioned. The merger line
// wins over per-stream destination lines because it names the muxed file.
func (c *Client) consumeOutput(stdout io.Reader, events chan<- extract.ProgressEvent) string {
	var lastFile string

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()

		if event, ok := ParseProgress(line); ok {
			events <- event

			continue
		}

		if path, ok := ParseDestination(line); ok {
			lastFile = path
		}
	}

	return lastFile
}

func buildArgs(spec extract.Spec) []string {
	args := []string{
		"--newline",
		"--progress",
		"--no-warnings",
		"--no-playlist",
		"-f", spec.FormatSelector(),
		"-o", spec.OutputTemplate,
		"--merge-output-format", extract.Container,
	}

	if spec.Segment != nil {
		args = append(args, "--download-sections", spec.Segment.SectionSpec(), "--force-keyframes-at-cuts")
	}

	if spec.CookieFile != "" {
		args = append(args, "--cookies", spec.CookieFile)
	}

	return append(args, spec.URL)
}
