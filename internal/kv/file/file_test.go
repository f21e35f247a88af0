package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"expensetracker/internal/kv"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, found, err := s.Get(ctx, "expenses"); err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "expenses", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "expenses", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, found, err := s.Get(ctx, "expenses")
	if err != nil || !found || string(got) != "[]" {
		t.Fatalf("unexpected get: %q found=%v err=%v", got, found, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "expenses.json" {
		t.Fatalf("expected only expenses.json, got %v", entries)
	}

	if err := s.Remove(ctx, "expenses"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "expenses"); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if _, found, _ := s.Get(ctx, "expenses"); found {
		t.Fatalf("expected key removed")
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", ".", "..", "../x", "a/b", `a\b`} {
		if err := s.Set(context.Background(), key, []byte("x")); !errors.Is(err, kv.ErrInvalidKey) {
			t.Fatalf("%q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestNewRejectsEmptyDir(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
