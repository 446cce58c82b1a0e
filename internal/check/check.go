package check

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/johns/query-chain/internal/config"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "qc check\n\n  no checks ran\n"
	}

	// Find max name length for alignment.
	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("qc check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfigFile reports whether a config file is present. An absent file
// is fine — defaults apply.
func CheckConfigFile() Result {
	path := filepath.Join(config.ConfigDir(), "config.toml")
	if _, err := os.Stat(path); err == nil {
		return Result{Name: "config", Status: Pass, Detail: config.CompressHome(path)}
	}
	return Result{Name: "config", Status: Pass, Detail: "not found (using defaults)"}
}

// CheckProviderName validates the configured provider name.
func CheckProviderName(p config.ProviderConfig) Result {
	switch p.Name {
	case "gemini", "openai", "ollama":
		return Result{Name: "provider", Status: Pass, Detail: p.Name}
	case "":
		return Result{Name: "provider", Status: Fail, Detail: "not set"}
	default:
		return Result{Name: "provider", Status: Fail, Detail: fmt.Sprintf("unknown provider %q", p.Name)}
	}
}

// CheckModel validates that a model is configured.
func CheckModel(p config.ProviderConfig) Result {
	if p.Model == "" {
		return Result{Name: "model", Status: Fail, Detail: "not set"}
	}
	return Result{Name: "model", Status: Pass, Detail: p.Model}
}

// CheckAPIKey verifies the credential env var is set for providers that
// need one. Ollama runs keyless.
func CheckAPIKey(p config.ProviderConfig) Result {
	if p.Name == "ollama" {
		return Result{Name: "api key", Status: Pass, Detail: "not required"}
	}
	keyEnv := p.APIKeyEnv
	if keyEnv == "" {
		return Result{Name: "api key", Status: Fail, Detail: "api_key_env not set"}
	}
	if os.Getenv(keyEnv) != "" {
		return Result{Name: "api key", Status: Pass, Detail: keyEnv + " set"}
	}
	return Result{Name: "api key", Status: Fail, Detail: keyEnv + " not set"}
}

// CheckBaseURL validates the base URL override, if any.
func CheckBaseURL(p config.ProviderConfig) Result {
	if p.BaseURL == "" {
		return Result{Name: "base url", Status: Pass, Detail: "provider default"}
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Result{Name: "base url", Status: Fail, Detail: fmt.Sprintf("invalid URL %q", p.BaseURL)}
	}
	return Result{Name: "base url", Status: Pass, Detail: u.Host}
}

// CheckTimeout reports the per-call timeout.
func CheckTimeout(p config.ProviderConfig) Result {
	if p.TimeoutSeconds <= 0 {
		return Result{Name: "timeout", Status: Warn, Detail: "not set (60s default)"}
	}
	return Result{Name: "timeout", Status: Pass, Detail: fmt.Sprintf("%ds", p.TimeoutSeconds)}
}

// Run executes all checks against the given config and returns a report.
func Run(cfg config.Config) Report {
	var results []Result

	results = append(results, CheckConfigFile())
	results = append(results, CheckProviderName(cfg.Provider))
	results = append(results, CheckModel(cfg.Provider))
	results = append(results, CheckAPIKey(cfg.Provider))
	results = append(results, CheckBaseURL(cfg.Provider))
	results = append(results, CheckTimeout(cfg.Provider))

	return Report{Results: results}
}
