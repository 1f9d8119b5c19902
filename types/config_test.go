package types

import (
	"strings"
	"testing"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("api:\n  token: abc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("base_url = %q, want default", cfg.API.BaseURL)
	}
	if cfg.API.Token != "abc" {
		t.Errorf("token = %q", cfg.API.Token)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Driver != "sqlite" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Currency != "TWD" {
		t.Errorf("currency = %q", cfg.Currency)
	}
}

func TestParseConfig_Full(t *testing.T) {
	input := `
api:
  base_url: https://api.guidee.example
  timeout: 30s
server:
  port: 9090
  driver: postgres
  dsn: postgres://localhost/guidee?sslmode=disable
  catalog: services.yaml
notify:
  telegram:
    bot_token: "123:abc"
    chat_id: -1001234
log:
  level: debug
  format: json
theme: dark
`
	cfg, err := ParseConfig([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.guidee.example" || cfg.API.Timeout != "30s" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Server.Driver != "postgres" || cfg.Server.CatalogPath != "services.yaml" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Notify.Telegram.ChatID != -1001234 {
		t.Errorf("chat_id = %d", cfg.Notify.Telegram.ChatID)
	}
	if cfg.Log.Format != "json" || cfg.Theme != "dark" {
		t.Errorf("log = %+v theme = %q", cfg.Log, cfg.Theme)
	}
}

func TestParseConfig_MissingBaseURL(t *testing.T) {
	_, err := ParseConfig([]byte("api:\n  base_url: \"\"\n"))
	if err == nil || !strings.Contains(err.Error(), "api.base_url") {
		t.Fatalf("expected base_url error, got %v", err)
	}
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	if _, err := ParseConfig([]byte("api: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
