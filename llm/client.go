package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Completer generates text from a prompt. The engine never inspects the
// provider beyond the returned string.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerationError marks an LLM call that produced no content. It is a
// distinct failure from any scoring error so callers can surface it as
// "generation failed" rather than a bad score.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ModelConfig defines how to contact an OpenAI-compatible completion API.
type ModelConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// Client implements Completer against an OpenAI-compatible chat endpoint.
type Client struct {
	cfg        ModelConfig
	httpClient *http.Client
}

var _ Completer = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg ModelConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts the prompt as a user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" || c.cfg.Endpoint == "" || c.cfg.Model == "" {
		return "", &GenerationError{Err: fmt.Errorf("llm client misconfigured")}
	}

	body, err := json.Marshal(map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.cfg.SystemPrompt)},
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("send completion request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &GenerationError{Err: fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(payload)))}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &GenerationError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("empty completion response")}
	}
	return parsed.Choices[0].Message.Content, nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You write marketing-site content drafts from briefs."
	}
	return prompt
}
