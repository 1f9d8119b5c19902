package config

import (
	"testing"

	"github.com/zoe5466/Gudiee-sub001/types"
)

func TestValidate_Defaults(t *testing.T) {
	r := Validate(types.DefaultConfig())
	if !r.IsValid() {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Fatalf("expected no warnings, got: %v", r.Warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Config)
	}{
		{"empty base url", func(c *types.Config) { c.API.BaseURL = "" }},
		{"relative base url", func(c *types.Config) { c.API.BaseURL = "/api" }},
		{"bad timeout", func(c *types.Config) { c.API.Timeout = "soon" }},
		{"negative timeout", func(c *types.Config) { c.API.Timeout = "-1s" }},
		{"port", func(c *types.Config) { c.Server.Port = 70000 }},
		{"driver", func(c *types.Config) { c.Server.Driver = "mysql" }},
		{"postgres without dsn", func(c *types.Config) { c.Server.Driver = "postgres"; c.Server.DSN = "" }},
		{"log level", func(c *types.Config) { c.Log.Level = "trace" }},
		{"log format", func(c *types.Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.DefaultConfig()
			tt.mutate(cfg)
			r := Validate(cfg)
			if r.IsValid() {
				t.Fatal("expected invalid")
			}
			if len(r.Errors) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(r.Errors), r.Errors)
			}
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.API.BaseURL = "http://api.guidee.example"
	cfg.Notify.Telegram.BotToken = "123:abc"
	cfg.Theme = "neon"

	r := Validate(cfg)
	if !r.IsValid() {
		t.Fatalf("warnings only, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(r.Warnings), r.Warnings)
	}
}
