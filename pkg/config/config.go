// Package config assembles runtime configuration from defaults, an optional
// YAML config file, and environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultModel is used when OPENAI_MODEL and the config file are silent.
const DefaultModel = "gpt-4.1-mini"

// DefaultHistoryLimit caps the transcript at 60 messages, roughly 30
// user/assistant exchanges.
const DefaultHistoryLimit = 60

// Config holds all runtime configuration for the client.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	HistoryPath  string
	HistoryLimit int
	Verbose      bool
}

// fileConfig is the YAML shape of the optional config file.
type fileConfig struct {
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	SystemPrompt string `yaml:"system"`
	HistoryPath  string `yaml:"history_path"`
	HistoryLimit int    `yaml:"history_limit"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Model:        DefaultModel,
		HistoryPath:  filepath.Join(home, ".chatgpt_history.json"),
		HistoryLimit: DefaultHistoryLimit,
	}
}

// DefaultFilePath returns the conventional config file location.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "chatgpt", "config.yaml")
}

// LoadFile overlays values from a YAML config file onto cfg. A missing file
// leaves cfg unchanged; a malformed file is an error.
func LoadFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}

	if strings.TrimSpace(fc.Model) != "" {
		cfg.Model = fc.Model
	}
	if strings.TrimSpace(fc.BaseURL) != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if strings.TrimSpace(fc.SystemPrompt) != "" {
		cfg.SystemPrompt = fc.SystemPrompt
	}
	if strings.TrimSpace(fc.HistoryPath) != "" {
		cfg.HistoryPath = fc.HistoryPath
	}
	if fc.HistoryLimit > 0 {
		cfg.HistoryLimit = fc.HistoryLimit
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto cfg. Env wins over the config
// file, which wins over defaults.
func FromEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.SystemPrompt = strings.TrimSpace(cfg.SystemPrompt)
	cfg.HistoryPath = strings.TrimSpace(cfg.HistoryPath)

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	return cfg
}
