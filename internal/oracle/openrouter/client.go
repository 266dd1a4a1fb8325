// Package openrouter talks to the OpenRouter chat completions API for both
// text and vision extraction requests.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Config holds OpenRouter client configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	VisionModel    string
	MaxTokens      int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client calls the OpenRouter chat completions endpoint.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	model          string
	visionModel    string
	maxTokens      int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new OpenRouter client.
func New(cfg Config, logger *slog.Logger) *Client {
	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = cfg.Model
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		visionModel:    visionModel,
		maxTokens:      cfg.MaxTokens,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "openrouter"),
	}
}

// CompleteText runs a chat completion against the text model.
func (c *Client) CompleteText(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: roleSystem, Content: system},
			{Role: roleUser, Content: user},
		},
		MaxTokens: c.maxTokens,
	}

	return c.complete(ctx, req)
}

// CompleteVision runs a chat completion against the vision model. The image
// travels as a data URL inside an image_url content part.
func (c *Client) CompleteVision(ctx context.Context, system, user, imageDataURL string) (string, error) {
	req := chatRequest{
		Model: c.visionModel,
		Messages: []message{
			{Role: roleSystem, Content: system},
			{Role: roleUser, Content: []contentPart{
				{Type: "text", Text: user},
				{Type: "image_url", ImageURL: &imagePayload{URL: imageDataURL}},
			}},
		},
		MaxTokens: c.maxTokens,
	}

	return c.complete(ctx, req)
}

func (c *Client) complete(ctx context.Context, req chatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var content string

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		content, err = c.doRequest(ctx, payload)
		if err == nil {
			return content, nil
		}

		if !retryable(err) {
			return "", err
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("completion failed, retrying",
			"model", req.Model,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return "", errors.New("response has empty content")
	}

	return content, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

// statusError keeps the HTTP status so the retry loop can tell rate limits
// and upstream failures apart from client mistakes.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("unexpected status: %d", e.status)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.status, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.status == http.StatusTooManyRequests || se.status >= http.StatusInternalServerError
	}
	return true
}
