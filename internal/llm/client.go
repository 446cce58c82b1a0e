package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/johns/query-chain/internal/config"
)

// Client is the one operation the chain needs from a completion provider:
// given a text prompt, return a text completion.
type Client interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
}

// Completion is a single provider response.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Usage holds token counts for one or more completion calls.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Add returns the sum of two usage counts.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
	}
}

// ProviderError is a completion call rejected at the API level: a non-2xx
// status, an in-band error body, or a response with no usable text.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: API error: %s", e.Provider, e.Message)
}

// New returns the provider client selected by cfg. The API key is resolved
// from the environment here, at construction: a missing key is a startup
// failure, never a mid-chain one. Ollama needs no key.
func New(cfg config.ProviderConfig) (Client, error) {
	switch cfg.Name {
	case "gemini":
		key := os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("gemini: %s not set", cfg.APIKeyEnv)
		}
		return NewGemini(cfg, key), nil

	case "openai":
		key := os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("openai: %s not set", cfg.APIKeyEnv)
		}
		return NewOpenAI(cfg, key), nil

	case "ollama":
		return NewOllama(cfg), nil

	default:
		return nil, fmt.Errorf("unknown provider %q (want gemini, openai, or ollama)", cfg.Name)
	}
}

// trimText trims completion text, rejecting empty responses.
func trimText(provider, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ProviderError{Provider: provider, Message: "empty completion text"}
	}
	return text, nil
}
