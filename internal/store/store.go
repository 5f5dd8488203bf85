// Package store persists integer scores by key.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// HighScoreStore is a synchronous, last-write-wins key/value store for scores.
type HighScoreStore interface {
	// Get returns the stored value and whether one was present.
	Get(key string) (int, bool)
	// Set stores value under key.
	Set(key string, value int) error
}

// Raiser is implemented by stores that can keep the maximum of a value
// without a separate read and write.
type Raiser interface {
	// Raise stores value under key unless the stored value is at least as
	// large, and returns the value held afterwards.
	Raise(key string, value int) (int, error)
}

// Raise keeps the larger of value and the stored value under key. Stores
// without a Raise method fall back to Get then Set.
func Raise(s HighScoreStore, key string, value int) (int, error) {
	if r, ok := s.(Raiser); ok {
		return r.Raise(key, value)
	}
	if cur, ok := s.Get(key); ok && cur >= value {
		return cur, nil
	}
	if err := s.Set(key, value); err != nil {
		return 0, err
	}
	return value, nil
}

// document is the on-disk layout of a FileStore.
type document struct {
	Scores map[string]int `toml:"scores"`
}

// FileStore keeps scores in a TOML file. Safe for concurrent use by
// sessions sharing one process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// Compile-time checks that FileStore implements the store interfaces.
var (
	_ HighScoreStore = (*FileStore)(nil)
	_ Raiser         = (*FileStore)(nil)
)

// NewFileStore creates a store backed by path. The file is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads key from disk. A missing or unreadable file counts as absent.
func (s *FileStore) Get(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, false
	}
	v, ok := doc.Scores[key]
	return v, ok
}

// Set writes key to disk, keeping other keys intact.
// A corrupt file is replaced rather than blocking the write.
func (s *FileStore) Set(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		doc = document{}
	}
	if doc.Scores == nil {
		doc.Scores = make(map[string]int)
	}
	doc.Scores[key] = value

	return s.save(doc)
}

// Raise writes value under key only when it beats the stored value. The
// read and write happen under one lock, so concurrent sessions never lower
// the stored score.
func (s *FileStore) Raise(key string, value int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		doc = document{}
	}
	if cur, ok := doc.Scores[key]; ok && cur >= value {
		return cur, nil
	}
	if doc.Scores == nil {
		doc.Scores = make(map[string]int)
	}
	doc.Scores[key] = value

	if err := s.save(doc); err != nil {
		return 0, err
	}
	return value, nil
}

// load decodes the backing file. Callers hold mu.
func (s *FileStore) load() (document, error) {
	var doc document
	if _, err := toml.DecodeFile(s.path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document{}, nil
		}
		return document{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc, nil
}

// save writes the document atomically via a temp file and rename. Callers hold mu.
func (s *FileStore) save(doc document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps scores in memory only.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
}

// Compile-time checks that MemoryStore implements the store interfaces.
var (
	_ HighScoreStore = (*MemoryStore)(nil)
	_ Raiser         = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Get returns the value for key.
func (m *MemoryStore) Get(key string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Raise stores value under key when it beats the current value.
func (m *MemoryStore) Raise(key string, value int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.values[key]; ok && cur >= value {
		return cur, nil
	}
	m.values[key] = value
	return value, nil
}
