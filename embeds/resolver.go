// Package embeds normalizes third-party media URLs into embeddable iframe
// URLs. Matching is deterministic and ordered; the first provider whose
// pattern matches wins, and unrecognized URLs resolve to nil so callers can
// degrade to an "unsupported" placeholder instead of failing.
package embeds

import (
	"net/url"
	"regexp"
	"strings"
)

// Provider tags returned by Resolve. The tag drives the aspect policy.
const (
	TypeYouTube      = "youtube"
	TypeYouTubeShort = "youtube-short"
	TypeSpotify      = "spotify"
	TypeSoundCloud   = "soundcloud"
	TypeTikTok       = "tiktok"
	TypeDeezer       = "deezer"
	TypeInstagram    = "instagram"
	TypeCalendly     = "calendly"
)

// Result is a normalized embed target.
type Result struct {
	Type     string
	EmbedURL string
}

// AspectMode selects how the host should size the embed frame.
type AspectMode int

const (
	// AspectFixed uses a fixed pixel height (audio widgets, schedulers).
	AspectFixed AspectMode = iota
	// AspectRatio uses a percentage-padding box derived from RatioPercent.
	AspectRatio
)

// Aspect describes the sizing policy for a resolved embed type.
type Aspect struct {
	Mode         AspectMode
	HeightPx     int
	RatioPercent float64
}

var (
	youtubeWatchRe  = regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`)
	youtubeShortRe  = regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`)
	spotifyRe       = regexp.MustCompile(`open\.spotify\.com/(?:embed/)?(track|album|playlist|artist)/([A-Za-z0-9]+)`)
	tiktokRe        = regexp.MustCompile(`tiktok\.com/.*/video/(\d+)`)
	deezerRe        = regexp.MustCompile(`deezer\.com/(?:[a-z]{2}/)?(track|album|playlist)/(\d+)`)
	instagramPathRe = regexp.MustCompile(`(instagram\.com/(?:p|reel|tv)/[A-Za-z0-9_-]+)`)
)

// Resolve maps a raw third-party URL to a normalized embed target. It
// returns nil when no supported provider matches; callers must treat that as
// "unsupported embed", not as an error.
func Resolve(rawURL string) *Result {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil
	}

	// Order matters: a URL mentioning several hosts must resolve to the
	// first provider in this chain.
	if m := youtubeShortRe.FindStringSubmatch(trimmed); m != nil {
		return &Result{Type: TypeYouTubeShort, EmbedURL: "https://www.youtube.com/embed/" + m[1]}
	}
	if m := youtubeWatchRe.FindStringSubmatch(trimmed); m != nil {
		return &Result{Type: TypeYouTube, EmbedURL: "https://www.youtube.com/embed/" + m[1]}
	}
	if m := spotifyRe.FindStringSubmatch(trimmed); m != nil {
		return &Result{Type: TypeSpotify, EmbedURL: "https://open.spotify.com/embed/" + m[1] + "/" + m[2]}
	}
	if strings.Contains(trimmed, "soundcloud.com") {
		return resolveSoundCloud(trimmed)
	}
	if m := tiktokRe.FindStringSubmatch(trimmed); m != nil {
		return &Result{Type: TypeTikTok, EmbedURL: "https://www.tiktok.com/embed/v2/" + m[1]}
	}
	if strings.Contains(trimmed, "deezer.com") {
		if m := deezerRe.FindStringSubmatch(trimmed); m != nil {
			return &Result{Type: TypeDeezer, EmbedURL: "https://widget.deezer.com/widget/dark/" + m[1] + "/" + m[2]}
		}
		return nil
	}
	if strings.Contains(trimmed, "instagram.com") {
		if m := instagramPathRe.FindStringSubmatch(trimmed); m != nil {
			return &Result{Type: TypeInstagram, EmbedURL: "https://www." + m[1] + "/embed"}
		}
		return nil
	}
	if strings.Contains(trimmed, "calendly.com") {
		// Calendly pages load natively inside a frame.
		return &Result{Type: TypeCalendly, EmbedURL: trimmed}
	}

	return nil
}

func resolveSoundCloud(raw string) *Result {
	// Already a widget URL: pass through unchanged.
	if strings.Contains(raw, "w.soundcloud.com/player") {
		return &Result{Type: TypeSoundCloud, EmbedURL: raw}
	}
	wrapped := "https://w.soundcloud.com/player/?url=" + url.QueryEscape(raw) +
		"&color=%23ff5500&auto_play=false&hide_related=false&show_comments=false&show_user=true&show_reposts=false&visual=false"
	return &Result{Type: TypeSoundCloud, EmbedURL: wrapped}
}

// AspectFor returns the sizing policy for an embed type. Audio widgets and
// schedulers use fixed heights; video and social formats use
// percentage-padding aspect boxes (16:9 default, 9:16 for vertical video,
// roughly 4:5 for TikTok and Instagram).
func AspectFor(embedType string) Aspect {
	switch embedType {
	case TypeSpotify:
		return Aspect{Mode: AspectFixed, HeightPx: 352}
	case TypeSoundCloud:
		return Aspect{Mode: AspectFixed, HeightPx: 166}
	case TypeDeezer:
		return Aspect{Mode: AspectFixed, HeightPx: 300}
	case TypeCalendly:
		return Aspect{Mode: AspectFixed, HeightPx: 700}
	case TypeYouTubeShort:
		return Aspect{Mode: AspectRatio, RatioPercent: 177.78}
	case TypeTikTok, TypeInstagram:
		return Aspect{Mode: AspectRatio, RatioPercent: 125}
	default:
		return Aspect{Mode: AspectRatio, RatioPercent: 56.25}
	}
}
