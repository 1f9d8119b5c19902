package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zoe5466/Gudiee-sub001/types"
)

func TestStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Session{
		User:     types.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", Role: types.RoleGuide, Languages: []string{"中文", "English"}},
		Token:    "tok-123",
		SavedAt:  time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		Endpoint: "http://localhost:8080",
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load after Clear = %v, want ErrNoSession", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestStore_SaveRequiresToken(t *testing.T) {
	s, _ := NewStore(filepath.Join(t.TempDir(), "session.yaml"))
	if err := s.Save(Session{User: types.User{ID: "u-1"}}); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("user: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	s, _ := NewStore(path)
	_, err := s.Load()
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Fatalf("expected parse error, got %v", err)
	}
}
