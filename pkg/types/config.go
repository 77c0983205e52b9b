package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed fetch stage.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default maximum number of papers per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	// Model is the completion model identifier (e.g. "gpt-5").
	Model string `json:"model" yaml:"model"`

	// APIKey is the bearer credential for the completion API. Absence is a
	// configuration error for summarization only, not for fetch or citations.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxWords bounds the word length of each generated summary (default 200).
	MaxWords int `json:"max_words" yaml:"max_words"`

	// RequestsPerSecond paces outbound completion calls (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// HistoryConfig holds settings for the query history log.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables the history log.
	Path string `json:"path" yaml:"path"`
}

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all stage configurations.
type Config struct {
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	History HistoryConfig `json:"history" yaml:"history"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
