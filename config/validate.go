package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/zoe5466/Gudiee-sub001/types"
)

var (
	knownDrivers    = map[string]bool{"sqlite": true, "sqlite3": true, "postgres": true}
	knownThemes     = map[string]bool{"dark": true, "light": true, "auto": true}
	knownLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	knownLogFormats = map[string]bool{"console": true, "json": true}
)

// ValidationResult holds errors and warnings from config validation.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks a Config for errors and warnings.
func Validate(cfg *types.Config) *ValidationResult {
	r := &ValidationResult{}

	if cfg.API.BaseURL == "" {
		r.errorf("api.base_url is required")
	} else if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		r.errorf("api.base_url %q must be an absolute URL", cfg.API.BaseURL)
	} else if u.Scheme == "http" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
		r.warnf("api.base_url %q is not using https", cfg.API.BaseURL)
	}

	if cfg.API.Timeout != "" {
		if d, err := time.ParseDuration(cfg.API.Timeout); err != nil || d <= 0 {
			r.errorf("api.timeout %q must be a positive duration", cfg.API.Timeout)
		}
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		r.errorf("server.port %d is out of range", cfg.Server.Port)
	}
	if cfg.Server.Driver != "" && !knownDrivers[cfg.Server.Driver] {
		r.errorf("server.driver %q must be one of: sqlite, sqlite3, postgres", cfg.Server.Driver)
	}
	if cfg.Server.Driver == "postgres" && cfg.Server.DSN == "" {
		r.errorf("server.dsn is required for the postgres driver")
	}

	tg := cfg.Notify.Telegram
	if (tg.BotToken == "") != (tg.ChatID == 0) {
		r.warnf("notify.telegram needs both bot_token and chat_id; telegram notifications are disabled")
	}

	if cfg.Theme != "" && !knownThemes[cfg.Theme] {
		r.warnf("unknown theme %q (known: dark, light, auto)", cfg.Theme)
	}
	if cfg.Log.Level != "" && !knownLogLevels[cfg.Log.Level] {
		r.errorf("log.level %q must be one of: debug, info, warn, error", cfg.Log.Level)
	}
	if cfg.Log.Format != "" && !knownLogFormats[cfg.Log.Format] {
		r.errorf("log.format %q must be one of: console, json", cfg.Log.Format)
	}
	if cfg.Currency != "" && cfg.Currency != "TWD" {
		r.warnf("currency %q is displayed as NT$ amounts", cfg.Currency)
	}

	return r
}
