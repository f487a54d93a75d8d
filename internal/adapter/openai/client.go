// Package openai is a minimal client for an OpenAI-compatible
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bodycomp/internal/app"
)

// Client calls the chat-completions endpoint of an OpenAI-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

var _ app.ChatCompleter = (*Client)(nil)

// New creates a Client for the given endpoint. baseURL is the API root
// (e.g. https://api.openai.com/v1).
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type completionRequest struct {
	Model    string            `json:"model"`
	Messages []app.ChatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message app.ChatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation and returns the first choice's content.
// Non-2xx upstream responses surface as errors including the upstream body.
func (c *Client) Complete(ctx context.Context, messages []app.ChatMessage) (string, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat-completions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstream, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat-completions returned %d: %s", resp.StatusCode, string(upstream))
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("chat-completions: decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat-completions: no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}
