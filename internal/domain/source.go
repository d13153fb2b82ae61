package domain

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidVideoURL = errors.New("invalid video url")
	ErrMissingSource   = errors.New("video url, stream url or kind required")
)

// First matching pattern wins; ordered from the common shapes (watch, short
// link, embed) to the query-string fallback.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// ExtractVideoID pulls the canonical video id out of any accepted URL shape.
func ExtractVideoID(url string) (string, bool) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// Source is the already-disambiguated creation request: exactly one variant,
// validated once at the boundary so the directory never sees raw shapes.
type Source struct {
	Kind      RoomKind
	VideoURL  string
	VideoID   string
	StreamURL string
}

// NewSource validates the raw creation fields into a tagged Source.
// A video URL wins over a stream URL when both are present, matching the
// request handling the clients already rely on.
func NewSource(videoURL, streamURL string, kind RoomKind) (Source, error) {
	if videoURL != "" {
		id, ok := ExtractVideoID(videoURL)
		if !ok {
			return Source{}, ErrInvalidVideoURL
		}
		return Source{Kind: KindYoutube, VideoURL: videoURL, VideoID: id}, nil
	}
	if streamURL != "" || kind == KindSoundcloud {
		return Source{Kind: KindSoundcloud, StreamURL: streamURL}, nil
	}
	return Source{}, ErrMissingSource
}
