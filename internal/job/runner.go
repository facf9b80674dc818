package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/clipfetch/clipfetch_bot/internal/logctx"
	"github.com/clipfetch/clipfetch_bot/internal/relay"
	"github.com/clipfetch/clipfetch_bot/internal/request"
	"github.com/clipfetch/clipfetch_bot/internal/telemetry"
)

// eventBuffer bounds the progress channel so a stalled chat edit applies
// backpressure to the tool reader instead of growing memory.
const eventBuffer = 16

// Messenger is the chat surface a job needs.
type Messenger interface {
	relay.MessageEditor
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendVideo(ctx context.Context, chatID int64, path, caption string) error
	SendTyping(ctx context.Context, chatID int64) error
}

// Runner drives download jobs end to end. One Runner serves all chats; each
// Run call is a self-contained job and is safe to invoke concurrently.
type Runner struct {
	extractor    extract.Extractor
	messenger    Messenger
	telemetry    *telemetry.Telemetry
	downloadDir  string
	ceilingBytes int64
	cookies      extract.CookieJar
}

func NewRunner(
	extractor extract.Extractor,
	messenger Messenger,
	tel *telemetry.Telemetry,
	downloadDir string,
	ceilingBytes int64,
	cookies extract.CookieJar,
) *Runner {
	return &Runner{
		extractor:    extractor,
		messenger:    messenger,
		telemetry:    tel,
		downloadDir:  downloadDir,
		ceilingBytes: ceilingBytes,
		cookies:      cookies,
	}
}

// Run executes one job: reply with a processing message, fetch while relaying
// progress onto that message, resolve the artifact, enforce the size ceiling
// and deliver. The job directory is removed on every path except the
// size-exceeded one, where the artifact is deliberately left on disk.
func (r *Runner) Run(ctx context.Context, chatID int64, req request.Request) {
	logger := logctx.LoggerFromContext(ctx).With("chat_id", chatID, "url", req.URL)
	ctx = logctx.WithLogger(ctx, logger)

	started := time.Now()
	status := "setup_failed"

	r.telemetry.IncrementActiveJobs()

	defer func() {
		r.telemetry.DecrementActiveJobs()
		r.telemetry.RecordJob(status, time.Since(started))
	}()

	messageID, err := r.messenger.SendText(ctx, chatID, processingText)
	if err != nil {
		logger.Error("failed to send processing message", "err", err)

		return
	}

	_ = r.messenger.SendTyping(ctx, chatID)

	j, err := New(r.downloadDir, chatID, req)
	if err != nil {
		logger.Error("failed to set up job workspace", "err", err)
		r.edit(ctx, chatID, messageID, fmt.Sprintf(genericErrorText, err))

		return
	}

	logger = logger.With("job_id", j.ID)
	ctx = logctx.WithLogger(ctx, logger)

	keepArtifact := false

	defer func() {
		if keepArtifact {
			return
		}

		if err := j.Cleanup(); err != nil {
			logger.Warn("failed to remove job directory", "dir", j.Dir, "err", err)
		}
	}()

	events := make(chan extract.ProgressEvent, eventBuffer)
	rel := relay.New(r.messenger, chatID, messageID)
	relayDone := make(chan struct{})

	go func() {
		defer close(relayDone)
		rel.Run(ctx, events)
	}()

	fetchErr := r.extractor.Fetch(ctx, j.Spec(r.ceilingBytes, r.cookies.FileFor(req.URL)), events)

	close(events)
	<-relayDone

	if fetchErr != nil {
		logger.Error("download failed", "err", fetchErr)
		r.edit(ctx, chatID, messageID, failureText(fetchErr))

		status = "download_failed"

		return
	}

	artifact, err := Resolve(j.Dir, rel.Filename())
	if err != nil {
		if !errors.Is(err, ErrNoArtifact) {
			logger.Error("failed to resolve artifact", "err", err)
		}

		r.edit(ctx, chatID, messageID, noArtifactText)

		status = "no_artifact"

		return
	}

	logger.Info("download finished", "path", artifact.Path, "size_bytes", artifact.SizeBytes)

	if artifact.SizeBytes > r.ceilingBytes {
		logger.Warn("artifact exceeds size ceiling", "size_bytes", artifact.SizeBytes, "ceiling_bytes", r.ceilingBytes)
		r.edit(ctx, chatID, messageID, tooLargeText(artifact.SizeBytes, r.ceilingBytes))

		// Left on disk so a self-hosting operator can still grab it.
		keepArtifact = true
		status = "size_exceeded"

		return
	}

	r.edit(ctx, chatID, messageID, uploadingText)
	_ = r.messenger.SendTyping(ctx, chatID)

	if err := r.messenger.SendVideo(ctx, chatID, artifact.Path, fmt.Sprintf(captionText, req.URL)); err != nil {
		logger.Error("failed to upload video", "err", err)
		r.edit(ctx, chatID, messageID, fmt.Sprintf(uploadFailedText, err))
		r.telemetry.RecordDelivery("error", artifact.SizeBytes)

		status = "upload_failed"

		return
	}

	if err := r.messenger.DeleteMessage(ctx, chatID, messageID); err != nil {
		logger.Debug("failed to delete processing message", "err", err)
	}

	r.telemetry.RecordDelivery("ok", artifact.SizeBytes)

	status = "delivered"

	logger.Info("video delivered", "size_bytes", artifact.SizeBytes)
}

// edit is best-effort; delivery decisions never depend on it succeeding.
func (r *Runner) edit(ctx context.Context, chatID int64, messageID int, text string) {
	if err := r.messenger.EditText(ctx, chatID, messageID, text); err != nil {
		logctx.LoggerFromContext(ctx).Debug("failed to edit status message", "err", err)
	}
}
