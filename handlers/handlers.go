package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/JAS0NN/youtube-summary/config"
	apperrors "github.com/JAS0NN/youtube-summary/errors"
	"github.com/JAS0NN/youtube-summary/models"
	"github.com/JAS0NN/youtube-summary/providers"
	"github.com/JAS0NN/youtube-summary/render"
	"github.com/JAS0NN/youtube-summary/services/summarize"
	"github.com/JAS0NN/youtube-summary/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash is a one-shot categorized message rendered above the form.
type Flash struct {
	Message  string
	Category string // "error" or "warning"
}

type indexData struct {
	Providers       map[models.Provider]bool
	DefaultProvider models.Provider
	Flash           *Flash
}

type resultData struct {
	Title       string
	VideoID     string
	SummaryHTML template.HTML
	SummaryText string
	Provider    models.Provider
	Transcript  string
}

// WebHandler serves the form-based web surface.
type WebHandler struct {
	service   summarize.Service
	creds     config.Credentials
	validator *validation.Validator
	templates *template.Template
	logger    *logrus.Logger
}

func NewWebHandler(svc summarize.Service, creds config.Credentials, logger *logrus.Logger) (*WebHandler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &WebHandler{
		service:   svc,
		creds:     creds,
		validator: validation.NewValidator(),
		templates: templates,
		logger:    logger,
	}, nil
}

// HandleIndex renders the URL input form.
func (h *WebHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, nil)
}

// HandleSummarize processes the form submission and renders either the
// result view or the form with a categorized flash message.
func (h *WebHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	const op = "WebHandler.HandleSummarize"
	logger := h.logger.WithContext(r.Context())

	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: 1024 * 1024,
		AllowedMethods:   []string{http.MethodPost},
	}); err != nil {
		h.renderFlash(w, apperrors.Coerce(op, err, "Invalid request"))
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.WithError(err).Error("Failed to parse form data")
		h.renderFlash(w, apperrors.Validation(op, err, "Failed to parse form data"))
		return
	}

	url := r.FormValue("url")
	provider := r.FormValue("provider")
	customModel := r.FormValue("model")
	saveFiles := r.FormValue("save_files") != ""

	if url == "" {
		h.renderFlash(w, apperrors.Validation(op, nil, "Please enter a YouTube URL"))
		return
	}
	if provider == "" {
		h.renderFlash(w, apperrors.Validation(op, nil, "Please select an AI provider"))
		return
	}
	if err := h.validator.BasicURLValidation(url); err != nil {
		h.renderFlash(w, apperrors.Coerce(op, err, "Invalid URL"))
		return
	}

	outcome := h.service.Summarize(r.Context(), summarize.Request{
		URL:         url,
		Provider:    provider,
		CustomModel: customModel,
		SaveFiles:   saveFiles,
	})

	if !outcome.Success {
		h.renderFlash(w, outcome.Err)
		return
	}

	data := resultData{
		Title:       outcome.Title,
		VideoID:     outcome.VideoID,
		SummaryHTML: render.SummaryHTML(outcome.Summary),
		SummaryText: outcome.Summary,
		Provider:    outcome.Provider,
		Transcript:  outcome.Transcript,
	}

	if err := h.templates.ExecuteTemplate(w, "result.html", data); err != nil {
		logger.WithError(err).Error("Failed to render result template")
	}
}

// HandleHealth returns a fixed liveness payload.
func (h *WebHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "youtube-summarizer",
	}); err != nil {
		h.logger.WithError(err).Error("Failed to encode health response")
	}
}

func (h *WebHandler) renderFlash(w http.ResponseWriter, appErr *apperrors.AppError) {
	h.renderIndex(w, &Flash{
		Message:  appErr.Message,
		Category: flashCategory(appErr.Kind),
	})
}

func (h *WebHandler) renderIndex(w http.ResponseWriter, flash *Flash) {
	data := indexData{
		Providers:       providers.Available(h.creds),
		DefaultProvider: providers.Default(h.creds),
		Flash:           flash,
	}

	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.WithError(err).Error("Failed to render index template")
	}
}

// flashCategory maps an error kind to a flash styling category. Missing
// captions are a property of the video, not a fault, so they render as a
// warning.
func flashCategory(kind apperrors.Kind) string {
	if kind == apperrors.KindTranscript {
		return "warning"
	}
	return "error"
}
