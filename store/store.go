package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DocumentStore is the read side of the content-store collaborator. A
// failed fetch returns nil, never an error: callers must treat nil as
// "data unavailable", not as an empty-but-valid result.
type DocumentStore interface {
	Fetch(ctx context.Context, query string, params map[string]interface{}) json.RawMessage
}

// FileStore persists named JSON documents to a single file with atomic
// writes and a coalescing background writer. It backs the workflow
// snapshot and usage statistics, and doubles as the in-process
// DocumentStore implementation.
type FileStore struct {
	mutex       sync.RWMutex
	documents   map[string]json.RawMessage
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// NewFileStore creates a store rooted in dataDir, loading any existing
// documents from disk.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{
		documents:   make(map[string]json.RawMessage),
		filePath:    filepath.Join(dataDir, "documents.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	go s.backgroundWriter()
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.documents)
}

func (s *FileStore) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.documents)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}

	// Write to a temporary file first, then rename (atomic on POSIX).
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func (s *FileStore) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			s.save()
			return
		}
	}
}

// requestWrite signals that a write to disk is needed. A full buffer means
// a write is already pending.
func (s *FileStore) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

// Put stores a document under key and schedules a disk write.
func (s *FileStore) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	s.mutex.Lock()
	s.documents[key] = data
	flush := time.Since(s.lastWrite) > time.Minute
	if flush {
		s.lastWrite = time.Now()
	}
	s.mutex.Unlock()

	if flush {
		s.requestWrite()
	}
	return nil
}

// Get unmarshals the document stored under key into out. Returns false
// when the key is absent.
func (s *FileStore) Get(key string, out interface{}) (bool, error) {
	s.mutex.RLock()
	data, exists := s.documents[key]
	s.mutex.RUnlock()

	if !exists {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Fetch implements DocumentStore. Query failures of any kind return nil.
func (s *FileStore) Fetch(_ context.Context, query string, _ map[string]interface{}) json.RawMessage {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, exists := s.documents[query]
	if !exists {
		return nil
	}
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out
}

// Flush forces an immediate synchronous write.
func (s *FileStore) Flush() error {
	return s.save()
}

// Close flushes pending writes and stops the background writer.
func (s *FileStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.save()
}
