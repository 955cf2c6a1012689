// Package embed classifies project video links and rewrites them into
// embeddable player URLs.
//
// Instagram posts cannot be framed, so they resolve to a [KindScript] plan
// that the page renders as a blockquote plus Instagram's embed.js. Every
// other link resolves to a [KindFrame] plan whose Src goes into an iframe.
// Links from unknown hosts are passed through unchanged.
package embed

import (
	"regexp"
	"strings"
)

// Kind is how a [Plan] is rendered.
type Kind string

const (
	KindScript Kind = "script"
	KindFrame  Kind = "frame"
)

// Provider is the video host a link was recognised as.
type Provider string

const (
	ProviderInstagram Provider = "instagram"
	ProviderYouTube   Provider = "youtube"
	ProviderVimeo     Provider = "vimeo"
	ProviderDrive     Provider = "drive"
	ProviderUnknown   Provider = "unknown"
)

// Plan describes how to embed a single video link.
type Plan struct {
	Kind     Kind     `json:"kind"`
	Provider Provider `json:"provider"`
	Src      string   `json:"src"`
}

var (
	instagramRe = regexp.MustCompile(`(?i)instagram\.com/(p|reel|tv)/`)
	youtubeRe   = regexp.MustCompile(`(?i)youtube\.com/watch\?v=|youtu\.be/`)
	vimeoRe     = regexp.MustCompile(`(?i)vimeo\.com/`)
	driveFileRe = regexp.MustCompile(`(?i)drive\.google\.com/file/d/`)
	driveOpenRe = regexp.MustCompile(`(?i)drive\.google\.com/open\?id=|uc\?id=`)

	youtubeShortID = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]+)`)
	youtubeLongID  = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]+)`)

	driveIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([^/]+)`),
		regexp.MustCompile(`[?&]id=([^&]+)`),
		regexp.MustCompile(`uc\?id=([^&]+)`),
	}
)

// Resolve classifies raw and returns its embed plan. It reports false when
// raw is blank after trimming.
//
// Providers are tried in order: Instagram, YouTube, Vimeo, Google Drive.
func Resolve(raw string) (Plan, bool) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return Plan{}, false
	}

	switch {
	case instagramRe.MatchString(u):
		return Plan{Kind: KindScript, Provider: ProviderInstagram, Src: InstagramPermalink(u)}, true
	case youtubeRe.MatchString(u):
		return Plan{Kind: KindFrame, Provider: ProviderYouTube, Src: YouTubeEmbed(u)}, true
	case vimeoRe.MatchString(u):
		return Plan{Kind: KindFrame, Provider: ProviderVimeo, Src: VimeoEmbed(u)}, true
	case driveFileRe.MatchString(u) || driveOpenRe.MatchString(u):
		return Plan{Kind: KindFrame, Provider: ProviderDrive, Src: DriveEmbed(u)}, true
	}
	return Plan{Kind: KindFrame, Provider: ProviderUnknown, Src: u}, true
}

// InstagramPermalink strips the query string from an Instagram post URL.
func InstagramPermalink(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}

// YouTubeEmbed rewrites a youtu.be or watch?v= link to the embed player.
// Links without a recognisable video ID are returned unchanged.
func YouTubeEmbed(u string) string {
	if m := youtubeShortID.FindStringSubmatch(u); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	if m := youtubeLongID.FindStringSubmatch(u); m != nil {
		return "https://www.youtube.com/embed/" + m[1]
	}
	return u
}

// VimeoEmbed rewrites vimeo.com/<id> to player.vimeo.com/video/<id>.
func VimeoEmbed(u string) string {
	if strings.Contains(u, "player.vimeo.com") {
		return u
	}
	return strings.Replace(u, "vimeo.com", "player.vimeo.com/video", 1)
}

// DriveEmbed rewrites a Google Drive share link to its /preview player.
// Links without a file ID are returned unchanged.
func DriveEmbed(u string) string {
	for _, re := range driveIDPatterns {
		if m := re.FindStringSubmatch(u); m != nil {
			return "https://drive.google.com/file/d/" + m[1] + "/preview"
		}
	}
	return u
}
