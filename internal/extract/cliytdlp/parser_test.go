package cliytdlp

import (
	"testing"
	"time"

	"github.com/clipfetch/clipfetch_bot/internal/extract"
	"github.com/stretchr/testify/require"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name string
		line string
		want extract.ProgressEvent
		ok   bool
	}{
		{
			name: "plain progress line",
			line: "[download]  42.3% of 31.40MiB at 2.51MiB/s ETA 00:07",
			want: extract.Downloading("42.3%", "31.40MiB", "2.51MiB/s", "00:07"),
			ok:   true,
		},
		{
			name: "estimated total size",
			line: "[download]   5.0% of ~ 120.00MiB at 900.12KiB/s ETA 02:11",
			want: extract.Downloading("5.0%", "120.00MiB", "900.12KiB/s", "02:11"),
			ok:   true,
		},
		{
			name: "destination line is not progress",
			line: "[download] Destination: video_downloads/abc/My Clip.f137.mp4",
			ok:   false,
		},
		{
			name: "extractor chatter",
			line: "[youtube] dQw4w9WgXcQ: Downloading webpage",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProgress(tt.line)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{
			name: "stream destination",
			line: "[download] Destination: video_downloads/abc/My Clip.f137.mp4",
			want: "video_downloads/abc/My Clip.f137.mp4",
			ok:   true,
		},
		{
			name: "merger names the muxed file",
			line: `[Merger] Merging formats into "video_downloads/abc/My Clip.mp4"`,
			want: "video_downloads/abc/My Clip.mp4",
			ok:   true,
		},
		{
			name: "already downloaded",
			line: "[download] video_downloads/abc/My Clip.mp4 has already been downloaded",
			want: "video_downloads/abc/My Clip.mp4",
			ok:   true,
		},
		{
			name: "progress line carries no path",
			line: "[download]  42.3% of 31.40MiB at 2.51MiB/s ETA 00:07",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDestination(tt.line)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBuildArgs(t *testing.T) {
	end := 50 * time.Second
	spec := extract.Spec{
		URL:            "https://example.com/v",
		Segment:        &extract.Segment{Start: 10 * time.Second, End: &end},
		OutputTemplate: "video_downloads/abc/%(title).200B.%(ext)s",
		CeilingBytes:   49 * 1024 * 1024,
		CookieFile:     "cookies/youtube.txt",
	}

	args := buildArgs(spec)

	require.Contains(t, args, "--no-playlist")
	require.Contains(t, args, "--merge-output-format")
	require.Contains(t, args, "--download-sections")
	require.Contains(t, args, "*00:00:10-00:00:50")
	require.Contains(t, args, "--force-keyframes-at-cuts")
	require.Contains(t, args, "--cookies")
	require.Equal(t, "https://example.com/v", args[len(args)-1])
}

func TestBuildArgsFullVideo(t *testing.T) {
	spec := extract.Spec{
		URL:            "https://example.com/v",
		OutputTemplate: "video_downloads/abc/%(title).200B.%(ext)s",
		CeilingBytes:   49 * 1024 * 1024,
	}

	args := buildArgs(spec)

	require.NotContains(t, args, "--download-sections")
	require.NotContains(t, args, "--cookies")
}
