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

// DefaultOllamaBaseURL is the default base URL for a local Ollama server.
const DefaultOllamaBaseURL = "http://localhost:11434"

// Ollama implements Client using the Ollama /api/chat endpoint. No API key.
type Ollama struct {
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
}

// NewOllama returns a Client for an Ollama server. If cfg.BaseURL is empty,
// DefaultOllamaBaseURL is used.
func NewOllama(cfg config.ProviderConfig) *Ollama {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultOllamaBaseURL
	}
	return &Ollama{
		model:       cfg.Model,
		baseURL:     base,
		temperature: cfg.Temperature,
		client:      http.DefaultClient,
	}
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
	Error           string      `json:"error,omitempty"`
}

// Complete sends the prompt to Ollama and returns the assistant reply.
func (c *Ollama) Complete(ctx context.Context, prompt string) (*Completion, error) {
	reqBody := ollamaRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  ollamaOptions{Temperature: c.temperature},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	url := c.baseURL + "/api/chat"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: "ollama", StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var out ollamaResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("ollama: unmarshal response: %w", err)
	}

	if out.Error != "" {
		return nil, &ProviderError{Provider: "ollama", Message: out.Error}
	}

	text, err := trimText("ollama", out.Message.Content)
	if err != nil {
		return nil, err
	}

	usage := Usage{
		InputTokens:  out.PromptEvalCount,
		OutputTokens: out.EvalCount,
	}

	return &Completion{Text: text, Model: c.model, Usage: usage}, nil
}
