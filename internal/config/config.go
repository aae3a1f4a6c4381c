// Package config loads the client configuration. The server address lives in
// a JSON file under ~/.config/fav and can be overridden per invocation with
// the FAV_API_URL environment variable.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// EnvAPIURL overrides the configured server address when set.
const EnvAPIURL = "FAV_API_URL"

// Config holds client configuration.
type Config struct {
	APIBaseURL string `json:"api_url"`
	PageSize   int    `json:"page_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIBaseURL: "http://localhost:8000",
		PageSize:   50,
	}
}

// Load reads config from the JSON file at path.
// Creates the file with defaults if it doesn't exist. An FAV_API_URL
// environment value takes precedence over the file.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIBaseURL = url
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			// Non-fatal: return defaults even if the save fails
			_ = Save(path, &cfg)
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaults.APIBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}

	return &cfg, nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/fav/config.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "fav", "config.json"), nil
}
