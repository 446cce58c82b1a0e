package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider.Name != "gemini" {
		t.Errorf("Provider.Name = %q", cfg.Provider.Name)
	}
	if cfg.Provider.Model != "gemini-2.5-flash" {
		t.Errorf("Provider.Model = %q", cfg.Provider.Model)
	}
	if cfg.Provider.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("Provider.APIKeyEnv = %q", cfg.Provider.APIKeyEnv)
	}
	if cfg.Provider.BaseURL != "" {
		t.Errorf("Provider.BaseURL = %q, want empty (provider default)", cfg.Provider.BaseURL)
	}
	if cfg.Provider.Temperature != 0.0 {
		t.Errorf("Provider.Temperature = %v, want 0.0", cfg.Provider.Temperature)
	}
	if cfg.Provider.MaxTokens != 1024 {
		t.Errorf("Provider.MaxTokens = %d", cfg.Provider.MaxTokens)
	}
	if cfg.Provider.TimeoutSeconds != 60 {
		t.Errorf("Provider.TimeoutSeconds = %d", cfg.Provider.TimeoutSeconds)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	// Point XDG to an empty dir so no config file is found
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider.Name != "gemini" {
		t.Errorf("Provider.Name = %q, want default gemini", cfg.Provider.Name)
	}
	if cfg.Provider.Model != "gemini-2.5-flash" {
		t.Errorf("Provider.Model = %q, want default model", cfg.Provider.Model)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	configDir := filepath.Join(xdg, "query-chain")
	os.MkdirAll(configDir, 0o755)

	tomlContent := `[provider]
name = "openai"
model = "gpt-4o-mini"
api_key_env = "OPENAI_API_KEY"
base_url = "https://api.openai.com/v1"
temperature = 0.2
max_tokens = 512
timeout_seconds = 30
`
	os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(tomlContent), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider.Name != "openai" {
		t.Errorf("Provider.Name = %q", cfg.Provider.Name)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("Provider.Model = %q", cfg.Provider.Model)
	}
	if cfg.Provider.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Provider.APIKeyEnv = %q", cfg.Provider.APIKeyEnv)
	}
	if cfg.Provider.Temperature != 0.2 {
		t.Errorf("Provider.Temperature = %v", cfg.Provider.Temperature)
	}
	if cfg.Provider.MaxTokens != 512 {
		t.Errorf("Provider.MaxTokens = %d", cfg.Provider.MaxTokens)
	}
	if cfg.Provider.TimeoutSeconds != 30 {
		t.Errorf("Provider.TimeoutSeconds = %d", cfg.Provider.TimeoutSeconds)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	configDir := filepath.Join(xdg, "query-chain")
	os.MkdirAll(configDir, 0o755)
	os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[provider]\nmodel = \"gemini-2.5-pro\"\n"), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider.Model != "gemini-2.5-pro" {
		t.Errorf("Provider.Model = %q", cfg.Provider.Model)
	}
	if cfg.Provider.Name != "gemini" {
		t.Errorf("Provider.Name = %q, want default preserved", cfg.Provider.Name)
	}
	if cfg.Provider.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("Provider.APIKeyEnv = %q, want default preserved", cfg.Provider.APIKeyEnv)
	}
}

func TestLoad_XDGPriority(t *testing.T) {
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	// Create config at XDG path
	xdgDir := filepath.Join(xdg, "query-chain")
	os.MkdirAll(xdgDir, 0o755)
	os.WriteFile(filepath.Join(xdgDir, "config.toml"), []byte("[provider]\nmodel = \"from-xdg\"\n"), 0o644)

	// Also create config at ~/.config path
	homeDir := filepath.Join(home, ".config", "query-chain")
	os.MkdirAll(homeDir, 0o755)
	os.WriteFile(filepath.Join(homeDir, "config.toml"), []byte("[provider]\nmodel = \"from-home\"\n"), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider.Model != "from-xdg" {
		t.Errorf("Provider.Model = %q, want from-xdg (XDG should take priority)", cfg.Provider.Model)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	configDir := filepath.Join(xdg, "query-chain")
	os.MkdirAll(configDir, 0o755)
	os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`name = [broken`), 0o644)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestTimeout(t *testing.T) {
	p := ProviderConfig{TimeoutSeconds: 30}
	if got := p.Timeout(); got != 30*time.Second {
		t.Errorf("Timeout = %v", got)
	}

	p = ProviderConfig{}
	if got := p.Timeout(); got != 60*time.Second {
		t.Errorf("Timeout (unset) = %v, want 60s default", got)
	}

	p = ProviderConfig{TimeoutSeconds: -5}
	if got := p.Timeout(); got != 60*time.Second {
		t.Errorf("Timeout (negative) = %v, want 60s default", got)
	}
}
