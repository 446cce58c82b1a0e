package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the query-chain config directory path.
// Uses $XDG_CONFIG_HOME/query-chain if set, otherwise ~/.config/query-chain.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "query-chain")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "query-chain")
}

// WriteDefault writes a default config.toml and reports whether a new file
// was created. An existing config.toml is left untouched.
func WriteDefault() (string, bool, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config dir: %w", err)
	}

	content := `[provider]
name            = "gemini"           # gemini, openai, or ollama
model           = "gemini-2.5-flash"
api_key_env     = "GEMINI_API_KEY"   # env var holding the API key
base_url        = ""                 # empty uses the provider's default endpoint
temperature     = 0.0
max_tokens      = 1024
timeout_seconds = 60                 # per-stage provider call timeout
`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}

	return path, true, nil
}

// CompressHome replaces $HOME prefix with ~/ for portable display values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
