package job

import (
	"errors"
	"fmt"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/dustin/go-humanize"
)

const (
	processingText   = "🔍 Got your link! Processing and trying to download the video..."
	uploadingText    = "✅ Download complete! Now uploading to Telegram..."
	noArtifactText   = "❌ Download seemed to complete, but I couldn't find the file. Please try again."
	unsupportedText  = "❌ Sorry, this website or video URL is not supported."
	unavailableText  = "❌ This video is unavailable or private."
	unextractedText  = "❌ Could not extract video information. The link might be broken or unsupported."
	genericErrorText = "❌ Failed to download video.\nError: %s"
	uploadFailedText = "❌ Failed to upload video to Telegram: %s"
	captionText      = "🎬 Here's your video!\nOriginal URL: %s"
)

func tooLargeText(sizeBytes, ceilingBytes int64) string {
	return fmt.Sprintf(
		"⚠️ The downloaded video is too large (%s) for me to send via Telegram (max %s). I tried to get a smaller version.",
		humanize.Bytes(uint64(sizeBytes)), humanize.Bytes(uint64(ceilingBytes)),
	)
}

// failureText maps a tool failure to the message shown in chat.
func failureText(err error) string {
	var extractionErr *extract.ExtractionError
	if errors.As(err, &extractionErr) {
		switch extractionErr.Kind {
		case extract.KindUnsupportedURL:
			return unsupportedText
		case extract.KindUnavailable:
			return unavailableText
		case extract.KindUnextractable:
			return unextractedText
		}
	}

	return fmt.Sprintf(genericErrorText, err)
}
