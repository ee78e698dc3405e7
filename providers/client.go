package providers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/JAS0NN/youtube-summary/errors"
	"github.com/JAS0NN/youtube-summary/models"
)

// requestTemperature keeps summaries near-deterministic.
const requestTemperature = 0.01

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client performs the outbound call to a chat-completion endpoint. Exactly
// one attempt per call; no retry, no backoff.
type Client struct {
	http   *http.Client
	logger *logrus.Logger
}

func NewClient(timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Summarize sends the assembled request to the routed provider and extracts
// the generated text from the response envelope. Callers only ever see the
// extracted text; the raw envelope stays in diagnostic logs.
func (c *Client) Summarize(ctx context.Context, req models.SummaryRequest, cfg models.ProviderConfig) (models.SummaryResult, error) {
	const op = "providers.Client.Summarize"
	log := c.logger.WithFields(logrus.Fields{
		"provider": cfg.Name,
		"model":    req.Model,
	})

	payload := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserContent},
		},
		Model:       req.Model,
		Stream:      req.Stream,
		Temperature: requestTemperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.SummaryResult{}, apperrors.Internal(op, err, "Failed to encode summary request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return models.SummaryResult{}, apperrors.Internal(op, err, "Failed to build summary request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return models.SummaryResult{}, apperrors.API(op, err,
				fmt.Sprintf("%s API call timed out", displayName(cfg.Name)))
		}
		return models.SummaryResult{}, apperrors.API(op, err,
			fmt.Sprintf("Failed to connect to %s API", displayName(cfg.Name)))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SummaryResult{}, apperrors.API(op, err,
			fmt.Sprintf("Failed to read %s API response", displayName(cfg.Name)))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.SummaryResult{}, apperrors.API(op, nil,
			fmt.Sprintf("%s API rejected the request: invalid or missing API key", displayName(cfg.Name)))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   truncateForLog(respBody),
		}).Error("Provider returned non-2xx status")
		return models.SummaryResult{}, apperrors.API(op, nil,
			fmt.Sprintf("%s API returned status %d", displayName(cfg.Name), resp.StatusCode))
	}

	var envelope chatResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		log.WithField("body", truncateForLog(respBody)).Error("Provider response is not valid JSON")
		return models.SummaryResult{}, apperrors.Parsing(op, err,
			fmt.Sprintf("Unexpected response format from %s API", displayName(cfg.Name)))
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		log.WithField("body", truncateForLog(respBody)).Error("Provider response missing choices[0].message.content")
		return models.SummaryResult{}, apperrors.Parsing(op, nil,
			fmt.Sprintf("Unexpected response format from %s API", displayName(cfg.Name)))
	}

	return models.SummaryResult{Text: envelope.Choices[0].Message.Content}, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}

func truncateForLog(body []byte) string {
	const limit = 2048
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
