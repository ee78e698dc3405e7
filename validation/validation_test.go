package validation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/JAS0NN/youtube-summary/errors"
)

func TestBasicURLValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=abc123"},
		{name: "short url", url: "https://youtu.be/abc123"},
		{name: "mobile url", url: "https://m.youtube.com/watch?v=abc123"},
		{name: "leading whitespace", url: "  https://youtu.be/abc123"},
		{name: "empty", url: "", wantErr: "Please enter a YouTube URL"},
		{name: "blank", url: "   ", wantErr: "Please enter a YouTube URL"},
		{name: "ftp scheme", url: "ftp://youtube.com/watch?v=abc123", wantErr: "HTTP or HTTPS"},
		{name: "wrong host", url: "https://vimeo.com/12345", wantErr: "Only YouTube URLs are supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.BasicURLValidation(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	v := NewValidator()
	opts := RequestValidationOpts{
		MaxContentLength: 64,
		AllowedMethods:   []string{http.MethodPost},
	}

	t.Run("allowed method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/summarize", nil)
		assert.NoError(t, v.ValidateRequest(req, opts))
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/summarize", nil)
		err := v.ValidateRequest(req, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Method GET not allowed")
	})

	t.Run("body too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/summarize", nil)
		req.ContentLength = 128
		err := v.ValidateRequest(req, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Request body too large")
	})
}
