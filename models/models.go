package models

import (
	apperrors "github.com/JAS0NN/youtube-summary/errors"
)

// Provider is one of the supported chat-completion backends.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderGrok       Provider = "grok"
	ProviderOpenRouter Provider = "openrouter"
)

// VideoReference is a raw URL resolved to a canonical video ID. Immutable
// once constructed by the resolver.
type VideoReference struct {
	RawURL  string
	VideoID string
}

// CaptionEntry is a single timestamped caption segment.
type CaptionEntry struct {
	Start float64
	Text  string
}

// CaptionTrack is an ordered caption sequence in a single language. Entries
// are non-decreasing in Start; Language is a code actually returned by the
// caption source, never invented.
type CaptionTrack struct {
	VideoID  string
	Language string
	Entries  []CaptionEntry
}

// FormattedTranscript is the human-readable rendering of a caption track:
// a title heading followed by one "[mm:ss] text" line per entry.
type FormattedTranscript struct {
	Title string
	Body  string
}

// ProviderConfig selects an endpoint, model and credential for one call.
type ProviderConfig struct {
	Name        Provider
	EndpointURL string
	ModelID     string
	APIKey      string
}

// SummaryRequest is the outbound chat-completion payload.
type SummaryRequest struct {
	SystemPrompt string
	UserContent  string
	Model        string
	Stream       bool
}

// SummaryResult holds the text extracted from a provider response envelope.
type SummaryResult struct {
	Text string
}

// Outcome is the single unit returned by the summarization service. An
// invocation is either fully successful or carries exactly one classified
// failure; there is no partial outcome.
type Outcome struct {
	Success    bool
	Title      string
	VideoID    string
	Summary    string
	Provider   Provider
	Model      string
	Transcript string
	Err        *apperrors.AppError
}

func SuccessOutcome(title, videoID, summary string, provider Provider, model, transcript string) Outcome {
	return Outcome{
		Success:    true,
		Title:      title,
		VideoID:    videoID,
		Summary:    summary,
		Provider:   provider,
		Model:      model,
		Transcript: transcript,
	}
}

func FailureOutcome(err *apperrors.AppError) Outcome {
	return Outcome{Err: err}
}

// FailureKind reports the error category of a failed outcome.
func (o Outcome) FailureKind() apperrors.Kind {
	if o.Success || o.Err == nil {
		return ""
	}
	return o.Err.Kind
}
