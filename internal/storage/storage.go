package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable client key-value store holding serialized session
// state across restarts (the browser localStorage of the original client).
type Store interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
	Remove(key string) error
}

// Well-known keys
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// FileStore persists values as a single JSON object on disk
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get decodes the value stored under key into out, reporting presence
func (s *FileStore) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return false, err
	}

	raw, ok := entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, creating the backing file as needed
func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	entries[key] = raw
	return s.write(entries)
}

// Remove deletes the value stored under key; absent keys are not an error
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.write(entries)
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}

	entries := map[string]json.RawMessage{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) write(entries map[string]json.RawMessage) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("storage: encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is a concurrency-safe in-memory Store for tests
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = raw
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
