package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/JAS0NN/youtube-summary/models"
)

// DefaultLanguages is the fixed fallback order for caption candidates:
// English first, then the regional Chinese variants.
var DefaultLanguages = []string{"en", "zh", "zh-CN", "zh-TW", "zh-Hant", "zh-Hans"}

// captionTrackInfo mirrors one entry of the captionTracks array inside the
// watch page's player response.
type captionTrackInfo struct {
	BaseURL        string `json:"baseUrl"`
	LanguageCode   string `json:"languageCode"`
	Kind           string `json:"kind"`
	IsTranslatable bool   `json:"isTranslatable"`
	Name           struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

type captionsBlob struct {
	Renderer *struct {
		CaptionTracks []captionTrackInfo `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// Fetcher retrieves a caption track for a video with language fallback. The
// caption metadata is scraped from the watch page; individual tracks are
// fetched as timedtext XML.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	languages []string
	logger    *logrus.Logger
}

func NewFetcher(timeout time.Duration, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		baseURL:   "https://www.youtube.com",
		languages: DefaultLanguages,
		logger:    logger,
	}
}

// NewFetcherWithBaseURL is used by tests to point at a fake caption source.
func NewFetcherWithBaseURL(baseURL string, languages []string, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		languages: languages,
		logger:    logger,
	}
}

// Fetch attempts each candidate language in order and returns the first track
// that succeeds. Language misses are not surfaced unless every candidate
// fails; a translatable track translated into the primary candidate is the
// final fallback before total failure.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (models.CaptionTrack, error) {
	log := f.logger.WithField("video_id", videoID)

	tracks, err := f.listTracks(ctx, videoID)
	if err != nil {
		return models.CaptionTrack{}, err
	}

	for _, lang := range f.languages {
		track, ok := pickTrack(tracks, lang)
		if !ok {
			continue
		}
		entries, err := f.fetchTrack(ctx, track.BaseURL)
		if err != nil {
			log.WithError(err).WithField("language", lang).Warn("Caption track fetch failed, trying next candidate")
			continue
		}
		log.WithField("language", lang).Debug("Caption track fetched")
		return models.CaptionTrack{VideoID: videoID, Language: lang, Entries: entries}, nil
	}

	// Translation fallback: derive the primary candidate language from any
	// translatable track that does exist.
	if len(f.languages) > 0 {
		target := f.languages[0]
		for _, track := range tracks {
			if !track.IsTranslatable {
				continue
			}
			entries, err := f.fetchTrack(ctx, track.BaseURL+"&tlang="+target)
			if err != nil {
				log.WithError(err).WithField("source_language", track.LanguageCode).
					Warn("Translated caption fetch failed")
				continue
			}
			log.WithFields(logrus.Fields{
				"source_language": track.LanguageCode,
				"language":        target,
			}).Info("Caption track derived via translation")
			return models.CaptionTrack{VideoID: videoID, Language: target, Entries: entries}, nil
		}
	}

	return models.CaptionTrack{}, ErrNoTranscript
}

// listTracks scrapes the watch page for the caption track metadata embedded
// in the player response JSON.
func (f *Fetcher) listTracks(ctx context.Context, videoID string) ([]captionTrackInfo, error) {
	body, err := f.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	page := string(body)

	parts := strings.SplitN(page, `"captions":`, 2)
	if len(parts) < 2 {
		if strings.Contains(page, `class="g-recaptcha"`) {
			return nil, ErrTooManyRequests
		}
		if !strings.Contains(page, `"playabilityStatus":`) {
			return nil, ErrVideoUnavailable
		}
		return nil, ErrCaptionsDisabled
	}

	rawBlob := strings.SplitN(parts[1], `,"videoDetails`, 2)[0]
	rawBlob = strings.ReplaceAll(rawBlob, "\n", "")

	var blob captionsBlob
	if err := json.Unmarshal([]byte(rawBlob), &blob); err != nil {
		return nil, errors.Wrap(err, "decode caption metadata")
	}
	if blob.Renderer == nil || len(blob.Renderer.CaptionTracks) == 0 {
		return nil, ErrCaptionsDisabled
	}

	return blob.Renderer.CaptionTracks, nil
}

func (f *Fetcher) fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build watch page request")
	}
	req.Header.Set("Accept-Language", "en-US")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch watch page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read watch page")
	}
	return body, nil
}

func (f *Fetcher) fetchTrack(ctx context.Context, trackURL string) ([]models.CaptionEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build caption request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch caption track")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("caption track returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read caption track")
	}

	entries, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("caption track is empty")
	}
	return entries, nil
}

// pickTrack selects a track for one language, preferring a manual track over
// an auto-generated ("asr") one.
func pickTrack(tracks []captionTrackInfo, lang string) (captionTrackInfo, bool) {
	for _, t := range tracks {
		if t.LanguageCode == lang && t.Kind != "asr" {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	return captionTrackInfo{}, false
}
