package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/johns/query-chain/internal/config"
)

// DefaultOpenAIBaseURL is the OpenAI API base. Any OpenAI-compatible
// endpoint (Groq, OpenRouter, x.ai, ...) works via base_url.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI implements Client using the chat completions API.
type OpenAI struct {
	model       string
	apiKey      string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewOpenAI returns a Client for an OpenAI-compatible chat completions
// endpoint. If cfg.BaseURL is empty, DefaultOpenAIBaseURL is used.
func NewOpenAI(cfg config.ProviderConfig, apiKey string) *OpenAI {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultOpenAIBaseURL
	}
	return &OpenAI{
		model:       cfg.Model,
		apiKey:      apiKey,
		baseURL:     base,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      http.DefaultClient,
	}
}

// Chat completions wire types, shared with the Ollama client.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
	Error   *chatError   `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

type chatError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *OpenAI) Complete(ctx context.Context, prompt string) (*Completion, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: "openai", StatusCode: resp.StatusCode, Message: chatErrorMessage(respBody)}
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("openai: unmarshal response: %w", err)
	}

	if out.Error != nil {
		return nil, &ProviderError{Provider: "openai", Message: out.Error.Message}
	}
	if len(out.Choices) == 0 {
		return nil, &ProviderError{Provider: "openai", Message: "empty choices in response"}
	}

	text, err := trimText("openai", out.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	var usage Usage
	if out.Usage != nil {
		usage = Usage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
		}
	}

	return &Completion{Text: text, Model: c.model, Usage: usage}, nil
}

// chatErrorMessage pulls the message out of a {"error": {...}} body, falling
// back to the raw body.
func chatErrorMessage(body []byte) string {
	var wrapped struct {
		Error *chatError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		return wrapped.Error.Message
	}
	return strings.TrimSpace(string(body))
}
