package check

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johns/query-chain/internal/config"
)

func TestCheckConfigFile_Present(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "query-chain")
	os.MkdirAll(cfgDir, 0o755)
	os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("[provider]\n"), 0o644)

	r := CheckConfigFile()
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if !strings.Contains(r.Detail, "config.toml") {
		t.Errorf("detail should show path: %s", r.Detail)
	}
}

func TestCheckConfigFile_Absent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	r := CheckConfigFile()
	if r.Status != Pass {
		t.Errorf("expected Pass for absent config (defaults apply), got %s", r.Status)
	}
	if !strings.Contains(r.Detail, "defaults") {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckProviderName(t *testing.T) {
	tests := []struct {
		name string
		want Status
	}{
		{"gemini", Pass},
		{"openai", Pass},
		{"ollama", Pass},
		{"", Fail},
		{"bedrock", Fail},
	}
	for _, tt := range tests {
		r := CheckProviderName(config.ProviderConfig{Name: tt.name})
		if r.Status != tt.want {
			t.Errorf("CheckProviderName(%q) = %s, want %s", tt.name, r.Status, tt.want)
		}
	}
}

func TestCheckModel(t *testing.T) {
	r := CheckModel(config.ProviderConfig{Model: "gemini-2.5-flash"})
	if r.Status != Pass || r.Detail != "gemini-2.5-flash" {
		t.Errorf("got %s: %s", r.Status, r.Detail)
	}

	r = CheckModel(config.ProviderConfig{})
	if r.Status != Fail {
		t.Errorf("expected Fail for empty model, got %s", r.Status)
	}
}

func TestCheckAPIKey_Set(t *testing.T) {
	t.Setenv("QC_CHECK_TEST_KEY", "sk-test-123")
	r := CheckAPIKey(config.ProviderConfig{Name: "gemini", APIKeyEnv: "QC_CHECK_TEST_KEY"})
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckAPIKey_Missing(t *testing.T) {
	t.Setenv("QC_CHECK_TEST_KEY_MISSING", "")
	r := CheckAPIKey(config.ProviderConfig{Name: "gemini", APIKeyEnv: "QC_CHECK_TEST_KEY_MISSING"})
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
	if !strings.Contains(r.Detail, "QC_CHECK_TEST_KEY_MISSING") {
		t.Errorf("detail should name the env var: %s", r.Detail)
	}
}

func TestCheckAPIKey_OllamaKeyless(t *testing.T) {
	r := CheckAPIKey(config.ProviderConfig{Name: "ollama"})
	if r.Status != Pass {
		t.Errorf("expected Pass, got %s: %s", r.Status, r.Detail)
	}
	if r.Detail != "not required" {
		t.Errorf("unexpected detail: %s", r.Detail)
	}
}

func TestCheckAPIKey_NoEnvName(t *testing.T) {
	r := CheckAPIKey(config.ProviderConfig{Name: "gemini"})
	if r.Status != Fail {
		t.Errorf("expected Fail, got %s: %s", r.Status, r.Detail)
	}
}

func TestCheckBaseURL(t *testing.T) {
	tests := []struct {
		url  string
		want Status
	}{
		{"", Pass},
		{"https://generativelanguage.googleapis.com", Pass},
		{"http://localhost:11434", Pass},
		{"not a url", Fail},
		{"ftp://example.com", Fail},
		{"https://", Fail},
	}
	for _, tt := range tests {
		r := CheckBaseURL(config.ProviderConfig{BaseURL: tt.url})
		if r.Status != tt.want {
			t.Errorf("CheckBaseURL(%q) = %s, want %s", tt.url, r.Status, tt.want)
		}
	}
}

func TestCheckTimeout(t *testing.T) {
	r := CheckTimeout(config.ProviderConfig{TimeoutSeconds: 60})
	if r.Status != Pass || r.Detail != "60s" {
		t.Errorf("got %s: %s", r.Status, r.Detail)
	}

	r = CheckTimeout(config.ProviderConfig{})
	if r.Status != Warn {
		t.Errorf("expected Warn for unset timeout, got %s", r.Status)
	}
}

func TestReport_HasFailures_True(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "a", Status: Pass},
		{Name: "b", Status: Fail},
	}}
	if !r.HasFailures() {
		t.Error("expected HasFailures() == true")
	}
}

func TestReport_HasFailures_False(t *testing.T) {
	r := Report{Results: []Result{
		{Name: "a", Status: Pass},
		{Name: "b", Status: Warn},
	}}
	if r.HasFailures() {
		t.Error("expected HasFailures() == false")
	}
}

func TestRun_HealthyConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("QC_RUN_TEST_KEY", "sk-test")

	cfg := config.DefaultConfig()
	cfg.Provider.APIKeyEnv = "QC_RUN_TEST_KEY"

	report := Run(cfg)
	if report.HasFailures() {
		t.Errorf("unexpected failures:\n%s", report.Format())
	}
	if len(report.Results) != 6 {
		t.Errorf("results: got %d, want 6", len(report.Results))
	}

	output := report.Format()
	if !strings.Contains(output, "qc check") {
		t.Error("Format() missing header")
	}
	if !strings.Contains(output, "passed") {
		t.Error("Format() missing summary line")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Pass, "pass"},
		{Warn, "warn"},
		{Fail, "FAIL"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
