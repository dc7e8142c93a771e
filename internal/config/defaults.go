package config

import "github.com/tanmaysane/studymate/internal/gateway"

// DefaultConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      "http://localhost:8000",
		Mode:           gateway.ModeGeneral,
		Difficulty:     gateway.DifficultyMedium,
		NumQuestions:   5,
		NumCards:       10,
		TimeoutSeconds: 60,
		History: HistoryConfig{
			Enabled: true,
			Path:    ".studymate/history.db",
		},
	}
}
