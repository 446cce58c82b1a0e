package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/johns/query-chain/internal/chain"
)

// Outcome renders a chain outcome as aligned terminal output: the query,
// all five stage completions, then the final category and response.
func Outcome(o *chain.Outcome) string {
	var b strings.Builder

	b.WriteString("qc run\n")

	b.WriteString("\nQuery\n")
	b.WriteString(indent(o.Query, "  "))
	b.WriteString("\n")

	b.WriteString("\nStages\n")
	for _, s := range o.Stages {
		fmt.Fprintf(&b, "  %d. %s\n", s.Stage, s.Name)
		b.WriteString(indent(s.Completion, "     "))
		b.WriteString("\n")
	}

	b.WriteString("\nOutcome\n")
	cat := string(o.Category)
	if o.Fallback {
		cat += " (no category matched)"
	}
	fmt.Fprintf(&b, "  %-10s %s\n", "category", cat)
	fmt.Fprintf(&b, "  %-10s %s\n", "model", o.Model)
	fmt.Fprintf(&b, "  %-10s %s in / %s out\n", "tokens", formatTokens(o.Usage.InputTokens), formatTokens(o.Usage.OutputTokens))
	fmt.Fprintf(&b, "  %-10s %s\n", "elapsed", o.Elapsed.Round(time.Millisecond))

	b.WriteString("\nResponse\n")
	b.WriteString(indent(o.Response, "  "))
	b.WriteString("\n")

	return b.String()
}

// JSON views keep wire naming decoupled from the chain types.

type outcomeJSON struct {
	RunID     string      `json:"run_id"`
	Query     string      `json:"query"`
	Category  string      `json:"category"`
	Fallback  bool        `json:"fallback,omitempty"`
	Response  string      `json:"response"`
	Model     string      `json:"model"`
	TokensIn  int         `json:"tokens_in"`
	TokensOut int         `json:"tokens_out"`
	ElapsedMS int64       `json:"elapsed_ms"`
	Stages    []stageJSON `json:"stages"`
}

type stageJSON struct {
	Stage      int      `json:"stage"`
	Name       string   `json:"name"`
	Prompt     string   `json:"prompt"`
	Completion string   `json:"completion"`
	Categories []string `json:"categories,omitempty"`
	Category   string   `json:"category,omitempty"`
	TokensIn   int      `json:"tokens_in"`
	TokensOut  int      `json:"tokens_out"`
	DurationMS int64    `json:"duration_ms"`
}

// OutcomeJSON renders the full outcome, stage records included, as
// indented JSON.
func OutcomeJSON(o *chain.Outcome) (string, error) {
	view := outcomeJSON{
		RunID:     o.RunID.String(),
		Query:     o.Query,
		Category:  string(o.Category),
		Fallback:  o.Fallback,
		Response:  o.Response,
		Model:     o.Model,
		TokensIn:  o.Usage.InputTokens,
		TokensOut: o.Usage.OutputTokens,
		ElapsedMS: o.Elapsed.Milliseconds(),
		Stages:    make([]stageJSON, 0, len(o.Stages)),
	}

	for _, s := range o.Stages {
		sv := stageJSON{
			Stage:      s.Stage,
			Name:       s.Name,
			Prompt:     s.Prompt,
			Completion: s.Completion,
			Category:   string(s.Category),
			TokensIn:   s.Usage.InputTokens,
			TokensOut:  s.Usage.OutputTokens,
			DurationMS: s.Duration.Milliseconds(),
		}
		for _, c := range s.Categories {
			sv.Categories = append(sv.Categories, string(c))
		}
		view.Stages = append(view.Stages, sv)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal outcome: %w", err)
	}
	return string(data) + "\n", nil
}

// indent prefixes every line of text.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// formatTokens formats a token count for display.
// <10K: plain with commas, >=10K: X.XK, >=1M: X.XM
func formatTokens(n int) string {
	if n < 0 {
		return "0"
	}
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 10_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return formatInt(n)
}

// formatInt formats an integer with comma separators.
func formatInt(n int) string {
	if n < 0 {
		return "0"
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
