package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	watchURLFormat = "%s/watch?v=%s"
	maxFilenameLen = 200
)

var titlePattern = regexp.MustCompile(`<meta name="title" content="([^"]+)"`)

// TitleResolver looks up a video's title from its watch page. Resolution is
// best-effort: every failure falls back to the video ID so the pipeline never
// aborts on a missing title.
type TitleResolver struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

func NewTitleResolver(timeout time.Duration, logger *logrus.Logger) *TitleResolver {
	return &TitleResolver{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://www.youtube.com",
		logger:  logger,
	}
}

// NewTitleResolverWithBaseURL is used by tests to point at a fake watch page.
func NewTitleResolverWithBaseURL(baseURL string, logger *logrus.Logger) *TitleResolver {
	return &TitleResolver{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Resolve returns the sanitized video title, or the video ID when the page
// cannot be fetched or carries no title meta tag.
func (r *TitleResolver) Resolve(ctx context.Context, videoID string) string {
	log := r.logger.WithField("video_id", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(watchURLFormat, r.baseURL, videoID), nil)
	if err != nil {
		log.WithError(err).Warn("Failed to build title request")
		return videoID
	}
	req.Header.Set("Accept-Language", "en-US")

	resp, err := r.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch video page for title")
		return videoID
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("Video page returned non-OK status")
		return videoID
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		log.WithError(err).Warn("Failed to read video page")
		return videoID
	}

	match := titlePattern.FindSubmatch(body)
	if match == nil {
		log.Warn("No title meta tag found in video page")
		return videoID
	}

	return SanitizeFilename(string(match[1]))
}

// SanitizeFilename makes a string safe to embed in a file name: characters
// illegal in file paths are stripped, spaces become underscores, and the
// result is truncated to a bounded length.
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		case ' ':
			return '_'
		}
		return r
	}, name)

	if runes := []rune(cleaned); len(runes) > maxFilenameLen {
		cleaned = string(runes[:maxFilenameLen])
	}
	return cleaned
}
