package config

import "github.com/tanmaysane/studymate/internal/gateway"

// Config is the top-level studymate configuration, corresponding to
// .studymate.yml.
type Config struct {
	ServerURL      string             `yaml:"server_url" koanf:"server_url"`
	Mode           gateway.Mode       `yaml:"mode" koanf:"mode"`
	Company        string             `yaml:"company" koanf:"company"`
	Topic          string             `yaml:"topic" koanf:"topic"`
	Difficulty     gateway.Difficulty `yaml:"difficulty" koanf:"difficulty"`
	NumQuestions   int                `yaml:"num_questions" koanf:"num_questions"`
	NumCards       int                `yaml:"num_cards" koanf:"num_cards"`
	TimeoutSeconds int                `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	History        HistoryConfig      `yaml:"history" koanf:"history"`
}

// HistoryConfig controls the local study-session transcript store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}
