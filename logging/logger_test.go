package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return FromZap(zap.New(core)), logs
}

func TestZapLogger_Fields(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	l.Info("order created", map[string]any{"order_id": "o-1", "total": 1848})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["order_id"] != "o-1" {
		t.Errorf("order_id = %v, want o-1", ctx["order_id"])
	}
	if ctx["total"] != int64(1848) {
		t.Errorf("total = %v (%T), want 1848", ctx["total"], ctx["total"])
	}
}

func TestZapLogger_DebugFiltered(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	l.Debug("hidden", nil)
	l.Warn("shown", nil)
	if logs.Len() != 1 {
		t.Fatalf("expected only the warn entry, got %d", logs.Len())
	}
	if logs.All()[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", logs.All()[0].Level)
	}
}

func TestZapLogger_Redacts(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	l.Info("submit", map[string]any{
		"password":        "Abc12345!",
		"confirmPassword": "Abc12345!",
		"paymentToken":    "tok_123",
		"idFront":         "data:image/png;base64,AAAA",
		"email":           "a@b.com",
	})

	ctx := logs.All()[0].ContextMap()
	for _, k := range []string{"password", "confirmPassword", "paymentToken"} {
		if ctx[k] != "[redacted]" {
			t.Errorf("%s = %v, want [redacted]", k, ctx[k])
		}
	}
	if ctx["idFront"] != "[data-url 26 bytes]" {
		t.Errorf("idFront = %v", ctx["idFront"])
	}
	if ctx["email"] != "a@b.com" {
		t.Errorf("email = %v, want a@b.com", ctx["email"])
	}
}

func TestZapLogger_ErrorField(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	l.Error("submit failed", map[string]any{"error": errors.New("boom")})
	if got := logs.All()[0].ContextMap()["error"]; got != "boom" {
		t.Errorf("error = %v, want boom", got)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_BadFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFallback(t *testing.T) {
	if Fallback(nil) == nil {
		t.Fatal("Fallback(nil) returned nil")
	}
	l, _ := observed(zapcore.InfoLevel)
	if Fallback(l) != Logger(l) {
		t.Error("Fallback should return the given logger")
	}
}
