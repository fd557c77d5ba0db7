package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
)

// DefaultFileName is the fixed key the collection blob is written under when
// the configuration only names a directory.
const DefaultFileName = "showcase-data.json"

// Store persists the collection as a single JSON blob at a fixed path. This
// is the local-storage deployment mode: no server, every mutation overwrites
// the whole file.
type Store struct {
	mu   sync.Mutex
	path string
}

// Config options for the file store
type Config struct {
	// Path is the blob location. A directory path is allowed and resolves
	// to DefaultFileName inside it.
	Path string
}

// New creates a new file-backed store, creating parent directories as
// needed.
func New(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, errors.New("path is required")
	}

	path := config.Path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{path: path}, nil
}

// Load reads and parses the blob.
func (s *Store) Load(ctx context.Context) (*showcase.ShowcaseData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, showcase.ErrDataNotFound
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var data showcase.ShowcaseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	return &data, nil
}

// Save overwrites the blob wholesale. The write goes through a temp file and
// a rename so a crash mid-write never leaves a truncated blob behind.
func (s *Store) Save(ctx context.Context, data *showcase.ShowcaseData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	return nil
}

// Path returns the blob location on disk.
func (s *Store) Path() string {
	return s.path
}
