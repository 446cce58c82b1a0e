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

// DefaultGeminiBaseURL is the Google Generative Language API endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini implements Client using the generateContent REST API.
type Gemini struct {
	model       string
	apiKey      string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewGemini returns a Client for the Gemini API. If cfg.BaseURL is empty,
// DefaultGeminiBaseURL is used.
func NewGemini(cfg config.ProviderConfig, apiKey string) *Gemini {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultGeminiBaseURL
	}
	return &Gemini{
		model:       cfg.Model,
		apiKey:      apiKey,
		baseURL:     base,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      http.DefaultClient,
	}
}

// Wire types for the generateContent request/response. Temperature is a
// pointer so that 0.0 is sent explicitly rather than dropped by omitempty.

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata *geminiUsage      `json:"usageMetadata,omitempty"`
	Error         *geminiAPIError   `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Complete sends the prompt to the generateContent endpoint and returns the
// first candidate's text.
func (c *Gemini) Complete(ctx context.Context, prompt string) (*Completion, error) {
	temp := c.temperature
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenConfig{
			Temperature:     &temp,
			MaxOutputTokens: c.maxTokens,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// url.Error quotes the request URL, so the key must stay out of it.
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: "gemini", StatusCode: resp.StatusCode, Message: apiErrorMessage(respBody)}
	}

	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("gemini: unmarshal response: %w", err)
	}

	if out.Error != nil {
		return nil, &ProviderError{Provider: "gemini", StatusCode: out.Error.Code, Message: out.Error.Message}
	}
	if len(out.Candidates) == 0 {
		return nil, &ProviderError{Provider: "gemini", Message: "no candidates in response"}
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	text, err := trimText("gemini", sb.String())
	if err != nil {
		return nil, err
	}

	var usage Usage
	if out.UsageMetadata != nil {
		usage = Usage{
			InputTokens:  out.UsageMetadata.PromptTokenCount,
			OutputTokens: out.UsageMetadata.CandidatesTokenCount,
		}
	}

	return &Completion{Text: text, Model: c.model, Usage: usage}, nil
}

// apiErrorMessage pulls the message out of a {"error": {...}} body, falling
// back to the raw body.
func apiErrorMessage(body []byte) string {
	var wrapped struct {
		Error *geminiAPIError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		return wrapped.Error.Message
	}
	return strings.TrimSpace(string(body))
}
