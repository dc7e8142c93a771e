package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (STUDYMATE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: STUDYMATE_SERVER_URL -> server_url, etc.
	if err := k.Load(env.Provider("STUDYMATE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STUDYMATE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if _, err := url.ParseRequestURI(c.ServerURL); err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}

	if !c.Mode.Valid() {
		return fmt.Errorf("invalid mode %q: must be one of general, quiz, flashcard, mock_interview, resume_review, company_specific", c.Mode)
	}

	if !c.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q: must be one of easy, medium, hard", c.Difficulty)
	}

	if c.NumQuestions < 1 {
		return fmt.Errorf("num_questions must be at least 1")
	}

	if c.NumCards < 1 {
		return fmt.Errorf("num_cards must be at least 1")
	}

	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1")
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	return nil
}
