package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all query-chain configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
}

// ProviderConfig selects and tunes the completion provider.
type ProviderConfig struct {
	Name           string  `toml:"name"`
	Model          string  `toml:"model"`
	APIKeyEnv      string  `toml:"api_key_env"`
	BaseURL        string  `toml:"base_url"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Name:           "gemini",
			Model:          "gemini-2.5-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			BaseURL:        "",
			Temperature:    0.0,
			MaxTokens:      1024,
			TimeoutSeconds: 60,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
// A .env file in the working directory is loaded first so that api_key_env
// lookups see keys kept there.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "query-chain", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "query-chain", "config.toml"))
	}

	return paths
}

// Timeout returns the per-call timeout, defaulting when unset.
func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}
