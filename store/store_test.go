package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "store-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	s, err := NewFileStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("PutAndGet", func(t *testing.T) {
		if err := s.Put("doc-1", payload{Name: "alpha", Count: 3}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		var got payload
		found, err := s.Get("doc-1", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !found {
			t.Fatal("Document not found after Put")
		}
		if got.Name != "alpha" || got.Count != 3 {
			t.Errorf("Round trip mismatch: %+v", got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		var got payload
		found, err := s.Get("missing", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if found {
			t.Error("Expected missing document")
		}
	})

	t.Run("FetchReturnsNilOnMiss", func(t *testing.T) {
		if raw := s.Fetch(context.Background(), "missing", nil); raw != nil {
			t.Errorf("Expected nil for missing document, got %s", raw)
		}
		if raw := s.Fetch(context.Background(), "doc-1", nil); raw == nil {
			t.Error("Expected stored document, got nil")
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		if err := s.Flush(); err != nil {
			t.Fatalf("Flush failed: %v", err)
		}

		reloaded, err := NewFileStore(tempDir)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reloaded.Close()

		var got payload
		found, err := reloaded.Get("doc-1", &got)
		if err != nil {
			t.Fatalf("Get after reload failed: %v", err)
		}
		if !found || got.Name != "alpha" {
			t.Errorf("Document lost across restart: found=%v %+v", found, got)
		}

		if _, err := os.Stat(filepath.Join(tempDir, "documents.json")); err != nil {
			t.Errorf("Backing file missing: %v", err)
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func(n int) {
				for j := 0; j < 50; j++ {
					s.Put("concurrent", payload{Count: n})
					var got payload
					s.Get("concurrent", &got)
					s.Fetch(context.Background(), "concurrent", nil)
				}
				done <- true
			}(i)
		}
		for i := 0; i < 10; i++ {
			<-done
		}
	})

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
