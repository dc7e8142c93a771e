package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tanmaysane/studymate/internal/gateway"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if cfg.Mode != gateway.ModeGeneral || cfg.Difficulty != gateway.DifficultyMedium {
		t.Errorf("unexpected defaults: mode=%s difficulty=%s", cfg.Mode, cfg.Difficulty)
	}
	if cfg.NumQuestions != 5 || cfg.NumCards != 10 {
		t.Errorf("unexpected counts: %d questions, %d cards", cfg.NumQuestions, cfg.NumCards)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".studymate.yml")
	content := `server_url: http://assistant.internal:9000
mode: quiz
topic: DSA
difficulty: hard
num_questions: 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://assistant.internal:9000" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
	if cfg.Mode != gateway.ModeQuiz || cfg.Difficulty != gateway.DifficultyHard {
		t.Errorf("mode=%s difficulty=%s", cfg.Mode, cfg.Difficulty)
	}
	if cfg.NumQuestions != 10 {
		t.Errorf("num_questions = %d", cfg.NumQuestions)
	}
	// Unset keys keep their defaults.
	if cfg.NumCards != 10 {
		t.Errorf("num_cards default lost: %d", cfg.NumCards)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".studymate.yml")
	if err := os.WriteFile(path, []byte("server_url: http://from-file:8000\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("STUDYMATE_SERVER_URL", "http://from-env:8000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://from-env:8000" {
		t.Errorf("env override not applied: %q", cfg.ServerURL)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".studymate.yml")

	cfg := DefaultConfig()
	cfg.Topic = "Networking"
	cfg.NumCards = 15
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Topic != "Networking" || loaded.NumCards != 15 {
		t.Errorf("round trip lost values: topic=%q num_cards=%d", loaded.Topic, loaded.NumCards)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server_url", func(c *Config) { c.ServerURL = "" }},
		{"bad mode", func(c *Config) { c.Mode = "party" }},
		{"bad difficulty", func(c *Config) { c.Difficulty = "impossible" }},
		{"zero questions", func(c *Config) { c.NumQuestions = 0 }},
		{"zero cards", func(c *Config) { c.NumCards = 0 }},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }},
		{"history without path", func(c *Config) { c.History = HistoryConfig{Enabled: true} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
