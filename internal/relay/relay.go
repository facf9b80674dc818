// Package relay forwards tool progress to a single chat message, rewriting
// it in place instead of flooding the chat.
package relay

import (
	"context"
	"fmt"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/clipfetch/clipfetch_bot/internal/logctx"
)

const progressTemplate = "Downloading...\nProgress: %s\nSize: %s\nSpeed: %s\nETA: %s"

const (
	finishedText = "✅ Download finished by yt-dlp. Preparing to send..."
	failedText   = "❌ yt-dlp encountered an error during download."
)

// MessageEditor is the one chat operation the relay needs.
type MessageEditor interface {
	EditText(ctx context.Context, chatID int64, messageID int, text string) error
}

// Relay consumes a job's ProgressEvent stream and owns every edit of that
// job's processing message. Being the sole consumer of the channel gives
// per-job ordering without any extra synchronization.
type Relay struct {
	editor    MessageEditor
	chatID    int64
	messageID int

	lastText string
	filename string
	failure  error
}

func New(editor MessageEditor, chatID int64, messageID int) *Relay {
	return &Relay{editor: editor, chatID: chatID, messageID: messageID}
}

// Run consumes events until the channel is closed. Identical consecutive
// progress texts are suppressed; that equality check is the only throttle.
func (r *Relay) Run(ctx context.Context, events <-chan extract.ProgressEvent) {
	for event := range events {
		switch event.Status {
		case extract.StatusDownloading:
			text := fmt.Sprintf(progressTemplate, event.Percent, event.TotalSize, event.Speed, event.ETA)
			if text == r.lastText {
				continue
			}

			r.edit(ctx, text)
			r.lastText = text
		case extract.StatusFinished:
			r.filename = event.Filename
			r.lastText = ""
			r.edit(ctx, finishedText)
		case extract.StatusFailed:
			r.failure = event.Err
			r.edit(ctx, failedText)
		}
	}
}

// Filename returns the tool-reported output path from the Finished event,
// or "" when none was reported.
func (r *Relay) Filename() string {
	return r.filename
}

// Err returns the failure carried by a Failed event, if any.
func (r *Relay) Err() error {
	return r.failure
}

// edit is best-effort: the message may have been deleted, be too old, or
// the platform may be rate-limiting us. None of that aborts the job.
func (r *Relay) edit(ctx context.Context, text string) {
	if err := r.editor.EditText(ctx, r.chatID, r.messageID, text); err != nil {
		logctx.LoggerFromContext(ctx).Debug("progress edit failed", "chat_id", r.chatID, "err", err)
	}
}
