// Package llm talks to the chat models that migrate Java 8 methods.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when a model answers with no text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client completes a conversation.
type Client interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
	Close() error
}

// Provider names accepted by New.
const (
	ProviderMistral = "mistral"
	ProviderGemini  = "gemini"
	ProviderFake    = "fake"
)

// Config selects and configures a provider.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	// RPS caps requests per second; zero disables the limit.
	RPS float64
	// Retries is the number of extra attempts after a retryable failure.
	Retries int
}

// New builds the client named by cfg.Provider, wrapped with rate limiting
// and retries when configured.
func New(ctx context.Context, cfg Config) (Client, error) {
	var inner Client
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderMistral:
		if cfg.APIKey == "" {
			return nil, errors.New("llm: mistral requires an API key")
		}
		inner = NewMistralClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, errors.New("llm: gemini requires an API key")
		}
		g, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		inner = g
	case ProviderFake:
		inner = NewFakeClient()
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
	return Wrap(inner, Retry(cfg.Retries), RateLimit(cfg.RPS)), nil
}
