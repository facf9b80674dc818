// Package job owns the lifecycle of one download-and-deliver request: a
// private working directory, the tool invocation, progress relay, artifact
// resolution and chat delivery.
package job

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/clipfetch/clipfetch_bot/internal/request"
	"github.com/google/uuid"
)

const dirPerm = 0o755

// Job is one request lifecycle. It is owned by the goroutine driving it and
// never stored in shared state; each job gets its own subdirectory of the
// download root so concurrent jobs cannot see each other's files.
type Job struct {
	ID      string
	ChatID  int64
	Request request.Request
	Dir     string
}

// New creates the job value and its working directory under root.
func New(root string, chatID int64, req request.Request) (*Job, error) {
	id := uuid.New().String()
	dir := filepath.Join(root, id)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create job directory: %w", err)
	}

	return &Job{ID: id, ChatID: chatID, Request: req, Dir: dir}, nil
}

// OutputTemplate is the tool's output path template inside the job directory.
func (j *Job) OutputTemplate() string {
	return filepath.Join(j.Dir, extract.OutputPattern)
}

// Spec builds the tool invocation spec for this job.
func (j *Job) Spec(ceilingBytes int64, cookieFile string) extract.Spec {
	spec := extract.Spec{
		URL:            j.Request.URL,
		OutputTemplate: j.OutputTemplate(),
		CeilingBytes:   ceilingBytes,
		CookieFile:     cookieFile,
	}

	if j.Request.Start != nil {
		spec.Segment = &extract.Segment{Start: *j.Request.Start, End: j.Request.End}
	}

	return spec
}

// Cleanup removes the job directory and everything in it.
func (j *Job) Cleanup() error {
	return os.RemoveAll(j.Dir)
}
