// Package types holds configuration types for guidee.yaml and the
// marketplace records exchanged with the API.
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level guidee.yaml configuration.
type Config struct {
	API      APIRef     `yaml:"api"`
	Server   ServerRef  `yaml:"server,omitempty"`
	Notify   NotifyRef  `yaml:"notify,omitempty"`
	Session  SessionRef `yaml:"session,omitempty"`
	Log      LogRef     `yaml:"log,omitempty"`
	Theme    string     `yaml:"theme,omitempty"` // dark, light, auto
	Currency string     `yaml:"currency,omitempty"`
}

// APIRef points the CLI at a marketplace backend.
type APIRef struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token,omitempty"`
	Timeout string `yaml:"timeout,omitempty"` // Go duration, default 15s
}

// ServerRef configures the local mock backend started by `guidee serve`.
type ServerRef struct {
	Port        int    `yaml:"port,omitempty"`
	Driver      string `yaml:"driver,omitempty"` // sqlite, sqlite3, postgres
	DSN         string `yaml:"dsn,omitempty"`
	CatalogPath string `yaml:"catalog,omitempty"`
}

// NotifyRef selects how success notifications are delivered.
type NotifyRef struct {
	Telegram TelegramRef `yaml:"telegram,omitempty"`
}

// TelegramRef enables the Telegram notifier when both values are set.
type TelegramRef struct {
	BotToken string `yaml:"bot_token,omitempty"`
	ChatID   int64  `yaml:"chat_id,omitempty"`
}

// SessionRef locates the local session file.
type SessionRef struct {
	Path string `yaml:"path,omitempty"` // default: ~/.guidee/session.yaml
}

// LogRef configures the logger.
type LogRef struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console, json
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIRef{
			BaseURL: "http://localhost:8080",
			Timeout: "15s",
		},
		Server: ServerRef{
			Port:   8080,
			Driver: "sqlite",
			DSN:    "file:guidee.db?_pragma=foreign_keys(1)",
		},
		Log: LogRef{
			Level:  "info",
			Format: "console",
		},
		Theme:    "auto",
		Currency: "TWD",
	}
}

// ParseConfig parses raw YAML bytes on top of DefaultConfig and validates
// required fields.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing guidee config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("guidee config: api.base_url is required")
	}
	return cfg, nil
}
