package bot

const welcomeText = `👋 Hello!

I'm your video downloading bot.
Use /download <URL> [START_TIME] [END_TIME] to fetch a video or a segment.
Times are optional (e.g., MM:SS or HH:MM:SS).

Example (full video): /download <your_video_url>
Example (segment): /download <your_video_url> 00:10 00:50

Type /help for more detailed information.`

const helpText = `ℹ️ How to use me:
Use the /download command followed by a video URL.
You can optionally specify a start and/or end time for the segment.

Formats:
1. /download <VIDEO_URL>
   Downloads the full video.

2. /download <VIDEO_URL> <START_TIME>
   Downloads from START_TIME to the end of the video.
   Example: /download <url> 01:20 (starts at 1 min 20 secs)

3. /download <VIDEO_URL> <START_TIME> <END_TIME>
   Downloads the segment between START_TIME and END_TIME.
   Example: /download <url> 00:30 02:15

Time format can be MM:SS or HH:MM:SS (e.g., 1:23 or 00:01:23).
Use 0 or 00:00 for the beginning if specifying an end time only (e.g. /download <url> 0 00:55).

Supported Sites:
Most sites supported by yt-dlp (YouTube, Vimeo, Twitter, etc.).

File Size Limit:
Telegram bots can only send files up to ~50MB. I'll try to get a version under this. Segments are more likely to fit!`

const (
	usageText      = "⚠️ URL missing. Usage: /download <URL> [start] [end]"
	invalidURLText = "⚠️ That doesn't look like a valid URL. Please send a direct link to a video."
)
