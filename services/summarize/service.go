package summarize

import (
	"context"
	stderrors "errors"

	"github.com/sirupsen/logrus"

	"github.com/JAS0NN/youtube-summary/config"
	apperrors "github.com/JAS0NN/youtube-summary/errors"
	"github.com/JAS0NN/youtube-summary/models"
	"github.com/JAS0NN/youtube-summary/prompt"
	"github.com/JAS0NN/youtube-summary/providers"
	"github.com/JAS0NN/youtube-summary/storage"
	"github.com/JAS0NN/youtube-summary/transcript"
	"github.com/JAS0NN/youtube-summary/youtube"
)

type service struct {
	captions CaptionSource
	titles   TitleSource
	chat     ChatClient
	store    Store
	creds    config.Credentials
	logger   *logrus.Logger
}

// NewService wires the pipeline components into a Service.
func NewService(
	captions CaptionSource,
	titles TitleSource,
	chat ChatClient,
	store Store,
	creds config.Credentials,
	logger *logrus.Logger,
) Service {
	return &service{
		captions: captions,
		titles:   titles,
		chat:     chat,
		store:    store,
		creds:    creds,
		logger:   logger,
	}
}

// Summarize sequences the pipeline stages. Stages run strictly in order; the
// first failure short-circuits the rest and becomes the outcome.
func (s *service) Summarize(ctx context.Context, req Request) models.Outcome {
	const op = "SummarizeService.Summarize"
	log := s.logger.WithContext(ctx).WithField("url", req.URL)

	ref, err := youtube.Resolve(req.URL)
	if err != nil {
		log.WithError(err).Warn("URL resolution failed")
		return models.FailureOutcome(apperrors.Coerce(op, err, "Invalid YouTube URL"))
	}
	log = log.WithField("video_id", ref.VideoID)

	track, err := s.captions.Fetch(ctx, ref.VideoID)
	if err != nil {
		log.WithError(err).Warn("Caption fetch failed")
		return models.FailureOutcome(s.classifyTranscriptErr(op, err))
	}

	title := s.titles.Resolve(ctx, ref.VideoID)
	formatted := transcript.Format(track, title)

	providerCfg, err := providers.Route(req.Provider, s.creds, req.CustomModel)
	if err != nil {
		log.WithError(err).Warn("Provider routing failed")
		return models.FailureOutcome(apperrors.Coerce(op, err, "Provider routing failed"))
	}
	log = log.WithFields(logrus.Fields{
		"provider": providerCfg.Name,
		"model":    providerCfg.ModelID,
	})

	summaryReq := prompt.Assemble(formatted.Body, providerCfg.ModelID)

	result, err := s.chat.Summarize(ctx, summaryReq, providerCfg)
	if err != nil {
		log.WithError(err).Error("Provider call failed")
		return models.FailureOutcome(apperrors.Coerce(op, err, "Summary generation failed"))
	}
	log.Info("Summary generated")

	outcome := models.SuccessOutcome(title, ref.VideoID, result.Text, providerCfg.Name, providerCfg.ModelID, formatted.Body)

	if req.SaveFiles {
		s.persist(outcome, formatted, summaryReq)
	}

	return outcome
}

// Transcript fetches and formats a caption track without calling a provider.
func (s *service) Transcript(ctx context.Context, rawURL string, save bool) (models.FormattedTranscript, error) {
	const op = "SummarizeService.Transcript"
	log := s.logger.WithContext(ctx).WithField("url", rawURL)

	ref, err := youtube.Resolve(rawURL)
	if err != nil {
		return models.FormattedTranscript{}, apperrors.Coerce(op, err, "Invalid YouTube URL")
	}

	track, err := s.captions.Fetch(ctx, ref.VideoID)
	if err != nil {
		log.WithError(err).Warn("Caption fetch failed")
		return models.FormattedTranscript{}, s.classifyTranscriptErr(op, err)
	}

	title := s.titles.Resolve(ctx, ref.VideoID)
	formatted := transcript.Format(track, title)

	if save {
		if _, err := s.store.SaveTranscript(formatted); err != nil {
			log.WithError(err).Error("Failed to save transcript")
		}
	}

	return formatted, nil
}

// persist writes transcript, summary and prompt files. Persistence is
// best-effort: failures are logged and never flip a successful outcome.
func (s *service) persist(outcome models.Outcome, formatted models.FormattedTranscript, req models.SummaryRequest) {
	if _, err := s.store.SaveTranscript(formatted); err != nil {
		s.logger.WithError(err).Error("Failed to save transcript")
	}

	if _, err := s.store.SaveSummary(storage.SummaryRecord{
		Title:    outcome.Title,
		VideoID:  outcome.VideoID,
		Provider: outcome.Provider,
		Model:    outcome.Model,
		Summary:  outcome.Summary,
	}); err != nil {
		s.logger.WithError(err).Error("Failed to save summary")
	}

	if _, err := s.store.SavePrompt(outcome.Title, prompt.Render(req)); err != nil {
		s.logger.WithError(err).Error("Failed to save formatted prompt")
	}
}

// classifyTranscriptErr translates caption-source failures into the
// transcript error kind with a user-facing message per failure variant.
func (s *service) classifyTranscriptErr(op string, err error) *apperrors.AppError {
	var captionErr transcript.Error
	if stderrors.As(err, &captionErr) {
		switch captionErr {
		case transcript.ErrCaptionsDisabled:
			return apperrors.Transcript(op, err, "Unable to fetch video transcript. Please ensure the video has subtitles enabled.")
		case transcript.ErrNoTranscript:
			return apperrors.Transcript(op, err, "No transcript available in English or Chinese.")
		case transcript.ErrVideoUnavailable:
			return apperrors.Transcript(op, err, "Video is unavailable.")
		case transcript.ErrTooManyRequests:
			return apperrors.Transcript(op, err, "The caption source is rate limiting requests. Please try again later.")
		}
	}
	return apperrors.Transcript(op, err, "Unable to fetch video transcript.")
}
