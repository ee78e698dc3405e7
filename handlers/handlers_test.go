package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAS0NN/youtube-summary/config"
	apperrors "github.com/JAS0NN/youtube-summary/errors"
	"github.com/JAS0NN/youtube-summary/models"
	"github.com/JAS0NN/youtube-summary/services/summarize"
)

type fakeService struct {
	outcome    models.Outcome
	transcript models.FormattedTranscript
	lastReq    summarize.Request
	called     bool
}

func (f *fakeService) Summarize(_ context.Context, req summarize.Request) models.Outcome {
	f.called = true
	f.lastReq = req
	return f.outcome
}

func (f *fakeService) Transcript(context.Context, string, bool) (models.FormattedTranscript, error) {
	return f.transcript, nil
}

func newTestHandler(t *testing.T, svc summarize.Service) *WebHandler {
	t.Helper()
	creds := config.Credentials{OpenAI: "sk-openai", Grok: "xai-grok"}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	h, err := NewWebHandler(svc, creds, logger)
	require.NoError(t, err)
	return h
}

func postForm(h *WebHandler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleSummarize(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	h := newTestHandler(t, &fakeService{})

	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "YouTube Summarizer")
	assert.Contains(t, body, `value="openai"`)
	assert.Contains(t, body, `value="grok"`)
	// OpenRouter has no key configured, so it renders without a radio input.
	assert.NotContains(t, body, `value="openrouter"`)
	assert.Contains(t, body, "openrouter (no API key)")
}

func TestHandleSummarizeSuccess(t *testing.T) {
	svc := &fakeService{
		outcome: models.SuccessOutcome(
			"Test Video", "abc123", "## Points\n\n- one\n", models.ProviderOpenAI, "gpt-4o",
			"# Test Video\n\n[00:00] hello\n",
		),
	}
	h := newTestHandler(t, svc)

	rec := postForm(h, url.Values{
		"url":      {"https://youtu.be/abc123"},
		"provider": {"openai"},
	})

	body := rec.Body.String()
	assert.Contains(t, body, "Test Video")
	assert.Contains(t, body, "<h2")
	assert.Contains(t, body, "[00:00] hello")

	assert.True(t, svc.called)
	assert.Equal(t, "https://youtu.be/abc123", svc.lastReq.URL)
	assert.Equal(t, "openai", svc.lastReq.Provider)
	assert.False(t, svc.lastReq.SaveFiles)
}

func TestHandleSummarizeSaveFilesCheckbox(t *testing.T) {
	svc := &fakeService{
		outcome: models.SuccessOutcome("T", "abc123", "s", models.ProviderOpenAI, "gpt-4o", "tr"),
	}
	h := newTestHandler(t, svc)

	postForm(h, url.Values{
		"url":        {"https://youtu.be/abc123"},
		"provider":   {"openai"},
		"save_files": {"1"},
	})

	assert.True(t, svc.lastReq.SaveFiles)
}

func TestHandleSummarizeMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		wantFlash string
	}{
		{
			name:      "missing url",
			form:      url.Values{"provider": {"openai"}},
			wantFlash: "Please enter a YouTube URL",
		},
		{
			name:      "missing provider",
			form:      url.Values{"url": {"https://youtu.be/abc123"}},
			wantFlash: "Please select an AI provider",
		},
		{
			name:      "not a youtube url",
			form:      url.Values{"url": {"https://vimeo.com/12345"}, "provider": {"openai"}},
			wantFlash: "Only YouTube URLs are supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := newTestHandler(t, svc)

			rec := postForm(h, tt.form)

			body := rec.Body.String()
			assert.Contains(t, body, tt.wantFlash)
			assert.Contains(t, body, `class="flash error"`)
			assert.False(t, svc.called)
		})
	}
}

func TestHandleSummarizeTranscriptFailureIsWarning(t *testing.T) {
	svc := &fakeService{
		outcome: models.FailureOutcome(apperrors.Transcript("op", nil,
			"Unable to fetch video transcript. Please ensure the video has subtitles enabled.")),
	}
	h := newTestHandler(t, svc)

	rec := postForm(h, url.Values{
		"url":      {"https://youtu.be/abc123"},
		"provider": {"openai"},
	})

	body := rec.Body.String()
	assert.Contains(t, body, `class="flash warning"`)
	assert.Contains(t, body, "subtitles enabled")
}

func TestHandleSummarizeAPIFailureIsError(t *testing.T) {
	svc := &fakeService{
		outcome: models.FailureOutcome(apperrors.API("op", nil, "OpenAI API returned status 500")),
	}
	h := newTestHandler(t, svc)

	rec := postForm(h, url.Values{
		"url":      {"https://youtu.be/abc123"},
		"provider": {"openai"},
	})

	body := rec.Body.String()
	assert.Contains(t, body, `class="flash error"`)
	assert.Contains(t, body, "status 500")
}

func TestHandleSummarizeRejectsGet(t *testing.T) {
	svc := &fakeService{}
	h := newTestHandler(t, svc)

	rec := httptest.NewRecorder()
	h.HandleSummarize(rec, httptest.NewRequest(http.MethodGet, "/summarize", nil))

	assert.Contains(t, rec.Body.String(), `class="flash error"`)
	assert.False(t, svc.called)
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t, &fakeService{})

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "youtube-summarizer", payload["service"])
}
