package playback

import (
	"errors"
	"fmt"
	"strings"

	"focusflow/internal/core/model"
)

// ErrInvalidSource indicates a music link that cannot be embedded.
var ErrInvalidSource = errors.New("invalid music source")

// Source is a parsed music source.
type Source struct {
	Kind model.SourceKind
	URL  string
	// EmbedURL is the link opened to play the source. Empty for manual sources.
	EmbedURL string
	playlist bool
}

// Controllable reports whether play/pause/volume reach the source. Only single
// YouTube videos expose a player API.
func (source Source) Controllable() bool {
	return source.Kind == model.SourceYouTube && !source.playlist
}

// ParseSource validates a music link and derives its embed URL.
func ParseSource(kind model.SourceKind, rawURL string) (Source, error) {
	rawURL = strings.TrimSpace(rawURL)
	source := Source{Kind: kind, URL: rawURL}

	switch kind {
	case model.SourceManual:
		return source, nil
	case model.SourceApple:
		source.EmbedURL = rawURL
		return source, nil
	case model.SourceSpotify:
		for _, item := range []string{"track", "playlist", "album"} {
			if id := segmentAfter(rawURL, item+"/", "?"); id != "" {
				source.EmbedURL = "https://open.spotify.com/embed/" + item + "/" + id
				return source, nil
			}
		}
		return source, fmt.Errorf("spotify url %q: %w", rawURL, ErrInvalidSource)
	case model.SourceYouTube:
		var videoID string
		switch {
		case strings.Contains(rawURL, "youtu.be/"):
			videoID = segmentAfter(rawURL, "youtu.be/", "?")
		case strings.Contains(rawURL, "youtube.com/watch?v="):
			videoID = segmentAfter(rawURL, "v=", "&")
		case strings.Contains(rawURL, "youtube.com/embed/"):
			videoID = segmentAfter(rawURL, "embed/", "?")
		case strings.Contains(rawURL, "youtube.com/playlist?list="):
			if listID := segmentAfter(rawURL, "list=", "&"); listID != "" {
				source.EmbedURL = "https://www.youtube.com/embed/videoseries?list=" + listID
				source.playlist = true
				return source, nil
			}
		}
		if videoID == "" {
			return source, fmt.Errorf("youtube url %q: %w", rawURL, ErrInvalidSource)
		}
		source.EmbedURL = "https://www.youtube.com/embed/" + videoID
		return source, nil
	default:
		return source, fmt.Errorf("unknown source kind %q: %w", kind, ErrInvalidSource)
	}
}

// FromSettings parses the persisted music selection. A missing selection
// yields a manual source.
func FromSettings(music *model.MusicSource) (Source, error) {
	if music == nil {
		return Source{Kind: model.SourceManual}, nil
	}
	return ParseSource(music.Kind, music.URL)
}

func segmentAfter(value, marker, terminator string) string {
	_, rest, found := strings.Cut(value, marker)
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(rest, terminator)
	return id
}
