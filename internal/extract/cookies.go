package extract

import (
	"os"
	"regexp"
)

var (
	youtubeURL   = regexp.MustCompile(`^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/(watch\?v=|embed/|v/|.+\?v=)?([^&=%\?]{11})`)
	instagramURL = regexp.MustCompile(`^(https?://)?(www\.)?instagram\.com/(p|reel|tv)/([^/?#&]+)`)
)

// IsYouTubeURL reports whether the URL points at YouTube.
func IsYouTubeURL(url string) bool {
	return youtubeURL.MatchString(url)
}

// IsInstagramURL reports whether the URL points at an Instagram post, reel or tv.
func IsInstagramURL(url string) bool {
	return instagramURL.MatchString(url)
}

// CookieJar holds per-site cookie file paths. The files are read-only and
// shared safely across concurrent jobs.
type CookieJar struct {
	YouTube   string
	Instagram string
}

// FileFor returns the cookie file to pass to the tool for this URL, or ""
// when the site is not recognized or the configured file does not exist.
func (j CookieJar) FileFor(url string) string {
	var path string

	switch {
	case IsYouTubeURL(url):
		path = j.YouTube
	case IsInstagramURL(url):
		path = j.Instagram
	}

	if path == "" {
		return ""
	}

	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}
