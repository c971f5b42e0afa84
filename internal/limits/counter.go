package limits

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Counter is the guest usage record: generations consumed on one
// calendar day. The date is a yyyy-mm-dd string; a counter whose date
// no longer matches today is stale and resets to zero.
type Counter struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CounterStore persists the guest counter. Concurrent client instances
// can race on it; an over- or under-counted guest quota is accepted.
type CounterStore interface {
	Load() (Counter, error)
	Save(Counter) error
}

// FileCounterStore keeps the counter in a small JSON file.
type FileCounterStore struct {
	path string
}

func NewFileCounterStore(dataDir string) *FileCounterStore {
	return &FileCounterStore{path: filepath.Join(dataDir, "guest_usage.json")}
}

func (s *FileCounterStore) Load() (Counter, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Counter{}, nil
	}
	if err != nil {
		return Counter{}, fmt.Errorf("failed to read guest counter: %w", err)
	}

	var c Counter
	if err := json.Unmarshal(raw, &c); err != nil {
		// a corrupt counter file starts the guest over rather than
		// locking them out
		return Counter{}, nil
	}

	return c, nil
}

func (s *FileCounterStore) Save(c Counter) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode guest counter: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write guest counter: %w", err)
	}

	return nil
}

// MemoryCounterStore is an in-memory store for tests.
type MemoryCounterStore struct {
	counter Counter
}

func (s *MemoryCounterStore) Load() (Counter, error) { return s.counter, nil }

func (s *MemoryCounterStore) Save(c Counter) error {
	s.counter = c
	return nil
}
