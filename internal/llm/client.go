// Package llm is a thin client for an OpenAI-style chat-completions API.
// The chat path treats it as an optional, fallible remote: any error
// here falls back to templated replies.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hotel-backend/internal/config"
	"hotel-backend/internal/domain/models"
)

// ErrUnconfigured means no API endpoint/key is set; callers fall back.
var ErrUnconfigured = errors.New("generative backend not configured")

type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewClient(env config.Env) *Client {
	return &Client{
		BaseURL: strings.TrimRight(env.LLMBaseURL, "/"),
		APIKey:  env.LLMAPIKey,
		Model:   env.LLMModel,
		Timeout: env.LLMTimeout,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.BaseURL != "" && c.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the system prompt plus conversation history and returns
// the assistant text. No retries: a failure is the caller's signal to
// fall back.
func (c *Client) Complete(ctx context.Context, system string, history []models.Turn) (string, error) {
	if !c.Configured() {
		return "", ErrUnconfigured
	}

	msgs := make([]chatMessage, 0, len(history)+1)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	for _, t := range history {
		msgs = append(msgs, chatMessage{Role: t.Role, Content: t.Text})
	}

	payload, err := json.Marshal(completionRequest{Model: c.Model, Messages: msgs})
	if err != nil {
		return "", err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned %d", res.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errors.New("completion response had no content")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
