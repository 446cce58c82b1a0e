package chain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johns/query-chain/internal/category"
	"github.com/johns/query-chain/internal/llm"
)

// ErrEmptyQuery is returned by Run, before any provider call, when the
// query is empty or whitespace.
var ErrEmptyQuery = errors.New("empty query")

// StageResult is the immutable record of one completed stage.
type StageResult struct {
	Stage      int
	Name       string
	Prompt     string
	Completion string

	// Categories holds stage 2's recognized candidates; Category holds
	// stage 3's extracted label. Zero values elsewhere.
	Categories []category.Category
	Category   category.Category

	Usage    llm.Usage
	Duration time.Duration
}

// Context accumulates the query and completed stage results. Prompt
// construction reads it; only Run appends to it.
type Context struct {
	Query   string
	Results []StageResult
}

// Outcome is the final result of one chain run.
type Outcome struct {
	RunID    uuid.UUID
	Query    string
	Category category.Category
	Fallback bool // stage 3 matched no known category
	Response string
	Stages   []StageResult
	Usage    llm.Usage
	Model    string
	Elapsed  time.Duration
}

// StageError reports the stage at which the chain broke.
type StageError struct {
	Stage int
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", e.Stage, e.Name, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Runner executes the five-stage chain against one provider client.
// A Runner is immutable and safe for concurrent runs.
type Runner struct {
	client  llm.Client
	timeout time.Duration
}

// NewRunner returns a Runner. timeout bounds each stage's provider call;
// zero leaves calls bounded only by the caller's ctx.
func NewRunner(client llm.Client, timeout time.Duration) *Runner {
	return &Runner{client: client, timeout: timeout}
}

// Run executes the five stages in strict sequence, each prompt built from
// the query plus all prior completions. It returns a complete Outcome or an
// error — never a partial Outcome. A provider failure at any stage aborts
// the rest; an unrecognized stage 3 category falls back to Uncategorized
// and the chain continues.
func (r *Runner) Run(ctx context.Context, query string) (*Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	cc := &Context{Query: query}

	var (
		usage    llm.Usage
		model    string
		fallback bool
	)

	for i, spec := range stages {
		stage := i + 1
		prompt := buildPrompt(spec, cc)

		callStart := time.Now()
		completion, err := r.complete(ctx, prompt)
		if err != nil {
			return nil, &StageError{Stage: stage, Name: spec.name, Err: err}
		}

		result := StageResult{
			Stage:      stage,
			Name:       spec.name,
			Prompt:     prompt,
			Completion: completion.Text,
			Usage:      completion.Usage,
			Duration:   time.Since(callStart),
		}

		switch stage {
		case 2:
			result.Categories = category.ParseList(completion.Text)
		case 3:
			c, ok := category.Parse(completion.Text)
			result.Category = c
			if !ok {
				fallback = true
				log.Printf("warning: no category matched %.80q, using %s", completion.Text, category.Uncategorized)
			}
		}

		usage = usage.Add(completion.Usage)
		model = completion.Model
		cc.Results = append(cc.Results, result)
	}

	return &Outcome{
		RunID:    uuid.New(),
		Query:    query,
		Category: cc.Results[2].Category,
		Fallback: fallback,
		Response: cc.Results[4].Completion,
		Stages:   cc.Results,
		Usage:    usage,
		Model:    model,
		Elapsed:  time.Since(start),
	}, nil
}

// complete issues one provider call under the per-stage timeout.
func (r *Runner) complete(ctx context.Context, prompt string) (*llm.Completion, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.client.Complete(ctx, prompt)
}
