package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("# Netscape HTTP Cookie File\n"), 0o600))
}

func TestFormatSelector(t *testing.T) {
	spec := Spec{CeilingBytes: 49 * 1024 * 1024}

	want := "bestvideo[ext=mp4][filesize<49M]+bestaudio[ext=m4a]/best[ext=mp4][filesize<49M]/best[filesize<49M]"
	require.Equal(t, want, spec.FormatSelector())
}

func TestFormatSelectorNoCeiling(t *testing.T) {
	spec := Spec{}

	require.Equal(t, "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best", spec.FormatSelector())
}

func TestSectionSpec(t *testing.T) {
	end := 50 * time.Second

	tests := []struct {
		name    string
		segment Segment
		want    string
	}{
		{name: "start and end", segment: Segment{Start: 10 * time.Second, End: &end}, want: "*00:00:10-00:00:50"},
		{name: "start only runs to end of media", segment: Segment{Start: 80 * time.Second}, want: "*00:01:20-inf"},
		{name: "hour-long offset", segment: Segment{Start: 3723 * time.Second}, want: "*01:02:03-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.segment.SectionSpec())
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Kind
	}{
		{name: "unsupported site", output: "ERROR: Unsupported URL: https://example.com/v", want: KindUnsupportedURL},
		{name: "private video", output: "ERROR: [youtube] abc: Video unavailable. This video is private", want: KindUnavailable},
		{name: "broken page", output: "ERROR: Unable to extract video data", want: KindUnextractable},
		{name: "anything else", output: "ERROR: something new went wrong", want: KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.output, nil)
			require.Equal(t, tt.want, got.Kind)
			require.NotEmpty(t, got.Output)
		})
	}
}

func TestCookieJarFileFor(t *testing.T) {
	jar := CookieJar{YouTube: "testdata/does-not-exist.txt"}

	// Recognized site but missing file: no cookie file is passed.
	require.Empty(t, jar.FileFor("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))

	// Unrecognized site: never a cookie file.
	require.Empty(t, jar.FileFor("https://vimeo.com/12345"))
}

func TestCookieJarFileForExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "youtube.txt")
	writeFile(t, path)

	jar := CookieJar{YouTube: path}
	require.Equal(t, path, jar.FileFor("https://youtu.be/dQw4w9WgXcQ"))
}

func TestSiteClassification(t *testing.T) {
	require.True(t, IsYouTubeURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	require.True(t, IsYouTubeURL("https://youtu.be/dQw4w9WgXcQ"))
	require.False(t, IsYouTubeURL("https://example.com/watch?v=dQw4w9WgXcQ"))

	require.True(t, IsInstagramURL("https://www.instagram.com/reel/Cxyz123/"))
	require.True(t, IsInstagramURL("https://instagram.com/p/Cxyz123"))
	require.False(t, IsInstagramURL("https://www.instagram.com/someuser/"))
}
