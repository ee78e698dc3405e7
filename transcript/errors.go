package transcript

// Error is a structured caption-source failure. Callers branch on these
// values instead of matching substrings in error messages.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCaptionsDisabled means the video exists but has captions turned off
	// entirely. Distinct from a language miss; never retried.
	ErrCaptionsDisabled = Error("subtitles are disabled for this video")

	// ErrNoTranscript means caption tracks exist but none matched any
	// candidate language and none could be derived via translation.
	ErrNoTranscript = Error("no transcript available in any candidate language")

	ErrVideoUnavailable = Error("video unavailable")
	ErrTooManyRequests  = Error("too many requests from this address")
)
