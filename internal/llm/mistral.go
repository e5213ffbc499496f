package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultMistralURL   = "https://api.mistral.ai/v1/chat/completions"
	DefaultMistralModel = "codestral-latest"
	DefaultMaxTokens    = 2048
)

// APIError is a non-2xx answer from a chat completions endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: unexpected status %d: %s", e.StatusCode, e.Body)
}

// MistralClient calls the Mistral chat completions API.
type MistralClient struct {
	http      *http.Client
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
}

// NewMistralClient creates a client. Empty model, baseURL and a zero
// maxTokens fall back to the defaults.
func NewMistralClient(apiKey, model, baseURL string, maxTokens int) *MistralClient {
	if model == "" {
		model = DefaultMistralModel
	}
	if baseURL == "" {
		baseURL = DefaultMistralURL
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &MistralClient{
		http:      &http.Client{Timeout: 120 * time.Second},
		apiKey:    apiKey,
		model:     model,
		baseURL:   baseURL,
		maxTokens: maxTokens,
	}
}

func (m *MistralClient) Name() string { return "Mistral:" + m.model }
func (m *MistralClient) Close() error { return nil }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends messages at temperature 0 and returns the first choice.
func (m *MistralClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     m.model,
		Messages:  messages,
		MaxTokens: m.maxTokens,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(msg)}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}
