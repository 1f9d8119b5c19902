// Package config loads guidee.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/zoe5466/Gudiee-sub001/types"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "guidee.yaml"

// Environment variables that override values from the file.
const (
	EnvAPIURL         = "GUIDEE_API_URL"
	EnvToken          = "GUIDEE_TOKEN"
	EnvTelegramToken  = "GUIDEE_TELEGRAM_TOKEN"
	EnvTelegramChatID = "GUIDEE_TELEGRAM_CHAT_ID"
	EnvDBDSN          = "GUIDEE_DB_DSN"
	EnvTheme          = "GUIDEE_THEME"
)

// getenv is swapped in tests.
var getenv = os.Getenv

// Load reads and parses a guidee.yaml file from the given path. A missing
// file yields the defaults; any other read error is returned.
func Load(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg := types.DefaultConfig()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("reading guidee config %s: %w", path, err)
	}

	cfg, err := types.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *types.Config) error {
	if v := getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := getenv(EnvToken); v != "" {
		cfg.API.Token = v
	}
	if v := getenv(EnvTelegramToken); v != "" {
		cfg.Notify.Telegram.BotToken = v
	}
	if v := getenv(EnvTelegramChatID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTelegramChatID, err)
		}
		cfg.Notify.Telegram.ChatID = id
	}
	if v := getenv(EnvDBDSN); v != "" {
		cfg.Server.DSN = v
	}
	if v := getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	return nil
}
