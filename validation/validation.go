package validation

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/JAS0NN/youtube-summary/errors"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// BasicURLValidation performs the cheap checks before the resolver runs:
// scheme and recognized YouTube host.
func (v *Validator) BasicURLValidation(urlStr string) error {
	const op = "Validator.BasicURLValidation"

	if strings.TrimSpace(urlStr) == "" {
		return apperrors.Validation(op, nil, "Please enter a YouTube URL")
	}

	parsedURL, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return apperrors.Validation(op, err, "Invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperrors.Validation(op, nil, "URL must use HTTP or HTTPS")
	}

	host := parsedURL.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return apperrors.Validation(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	AllowedMethods   []string
}

// ValidateRequest validates HTTP requests
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	if len(opts.AllowedMethods) > 0 {
		methodAllowed := false
		for _, method := range opts.AllowedMethods {
			if r.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			return apperrors.Validation(op, nil, fmt.Sprintf("Method %s not allowed", r.Method))
		}
	}

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return apperrors.Validation(op, nil, "Request body too large")
	}

	return nil
}
