// Package openrouter implements a client for an OpenAI-compatible
// chat-completions endpoint with bearer-token authorization. It performs
// a single best-effort call per request: no retries, no rate limiting.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/culturahq/cultura-api/internal/config"
	"github.com/culturahq/cultura-api/internal/generation"
	"github.com/culturahq/cultura-api/internal/platform/logger"
)

// Client sends chat-completions requests to the configured model
// endpoint. The system message, model name, and sampling parameters are
// fixed at construction; each SendMessage call supplies the user message.
type Client struct {
	httpClient    *http.Client
	endpoint      string
	apiKey        string
	systemMessage string
	model         string
	temperature   float64
	maxTokens     int
	logger        *slog.Logger
}

// NewClient creates a model client from the LLM configuration.
// A missing API key is logged here rather than returned, so the rest of
// the application can start without the generation feature; sends will
// fail with generation.ErrAPIKeyMissing.
func NewClient(cfg config.LLMConfig, systemMessage string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "openrouter_client"))

	if cfg.APIKey == "" {
		log.Error("model API key is not configured, generation requests will fail",
			slog.String("endpoint", cfg.Endpoint))
	}

	return &Client{
		httpClient:    &http.Client{},
		endpoint:      cfg.Endpoint,
		apiKey:        cfg.APIKey,
		systemMessage: systemMessage,
		model:         cfg.ModelName,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		logger:        log,
	}
}

// SendMessage sends a single chat-completions request combining the
// configured system message with the given user message and returns the
// validated response.
func (c *Client) SendMessage(ctx context.Context, input string) (*Response, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if strings.TrimSpace(input) == "" {
		return nil, generation.ErrEmptyInput
	}

	if c.apiKey == "" {
		return nil, generation.ErrAPIKeyMissing
	}

	body, err := json.Marshal(requestBody{
		Messages: []Message{
			{Role: "system", Content: c.systemMessage},
			{Role: "user", Content: input},
		},
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debug("sending model request", slog.String("model", c.model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("model request failed to send", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrRequestFailed, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Warn("failed to close response body", slog.String("error", cerr.Error()))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", generation.ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("model request rejected",
			slog.Int("status", resp.StatusCode))
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		log.Error("failed to decode model response", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	if err := validateResponse(&parsed); err != nil {
		return nil, err
	}

	log.Debug("model response received",
		slog.String("response_id", parsed.ID),
		slog.Int("choices", len(parsed.Choices)))

	return &parsed, nil
}

// Ensure Client implements generation.ModelClient
var _ generation.ModelClient = (*Client)(nil)

// Complete implements generation.ModelClient. It sends the prompt and
// returns the first choice's message content, or an empty string when
// the response carries none.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.SendMessage(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}

// validateResponse checks the gross shape of a decoded response: a
// non-empty choices list whose messages carry a role.
func validateResponse(resp *Response) error {
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: empty choices list", generation.ErrInvalidResponse)
	}

	for i, choice := range resp.Choices {
		if choice.Message.Role == "" {
			return fmt.Errorf("%w: choice %d has no message role", generation.ErrInvalidResponse, i)
		}
	}

	return nil
}
