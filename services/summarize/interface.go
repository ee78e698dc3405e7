package summarize

import (
	"context"

	"github.com/JAS0NN/youtube-summary/models"
	"github.com/JAS0NN/youtube-summary/storage"
)

// Service runs the full URL-to-summary pipeline. It is the only contract the
// CLI and web layers depend on.
type Service interface {
	// Summarize resolves the URL, fetches captions, routes the provider,
	// calls it, and returns a single Outcome. Never panics and never returns
	// an unclassified failure.
	Summarize(ctx context.Context, req Request) models.Outcome

	// Transcript runs the pipeline up to transcript formatting only; no
	// provider call is made.
	Transcript(ctx context.Context, rawURL string, save bool) (models.FormattedTranscript, error)
}

// Request is one user-facing summarization invocation.
type Request struct {
	URL         string
	Provider    string
	CustomModel string
	SaveFiles   bool
}

// CaptionSource retrieves a caption track for a video with language fallback.
type CaptionSource interface {
	Fetch(ctx context.Context, videoID string) (models.CaptionTrack, error)
}

// TitleSource resolves a video title, falling back to the video ID.
type TitleSource interface {
	Resolve(ctx context.Context, videoID string) string
}

// ChatClient performs the outbound chat-completion call.
type ChatClient interface {
	Summarize(ctx context.Context, req models.SummaryRequest, cfg models.ProviderConfig) (models.SummaryResult, error)
}

// Store persists transcript, summary and prompt files.
type Store interface {
	SaveTranscript(t models.FormattedTranscript) (string, error)
	SaveSummary(rec storage.SummaryRecord) (string, error)
	SavePrompt(title, rendered string) (string, error)
}
