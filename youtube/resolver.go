package youtube

import (
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/JAS0NN/youtube-summary/errors"
	"github.com/JAS0NN/youtube-summary/models"
)

// videoIDPattern matches a canonical video identifier: a non-empty token with
// no URL-reserved delimiter characters.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Resolve parses a YouTube URL into a VideoReference. Recognized shapes:
//
//   - youtube.com/watch?v=ID   (also www. and m. hosts)
//   - youtube.com/embed/ID and youtube.com/v/ID
//   - youtu.be/ID
//
// Anything else fails with a validation error; the resolver never guesses.
func Resolve(raw string) (models.VideoReference, error) {
	const op = "youtube.Resolve"

	cleaned := strings.TrimSpace(raw)
	cleaned = trimMatchedQuotes(cleaned)

	if cleaned == "" {
		return models.VideoReference{}, apperrors.Validation(op, nil, "URL is required")
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return models.VideoReference{}, apperrors.Validation(op, err, "Invalid YouTube URL")
	}

	var id string
	switch u.Hostname() {
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		id = idFromYouTubePath(u)
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	}

	if id == "" || !videoIDPattern.MatchString(id) {
		return models.VideoReference{}, apperrors.Validation(op, nil, "Could not extract video ID from URL")
	}

	return models.VideoReference{RawURL: cleaned, VideoID: id}, nil
}

func idFromYouTubePath(u *url.URL) string {
	if u.Path == "/watch" {
		return u.Query().Get("v")
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 2 && (segments[0] == "embed" || segments[0] == "v") {
		return segments[1]
	}
	return ""
}

// trimMatchedQuotes strips single or double quotes wrapped around a pasted
// URL, a common shell-quoting leftover.
func trimMatchedQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
			continue
		}
		break
	}
	return s
}
