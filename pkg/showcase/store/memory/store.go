package memory

import (
	"context"
	"sync"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
)

// Store is an in-memory implementation of the showcase.Store interface,
// used in tests and for throwaway deployments.
type Store struct {
	mu   sync.RWMutex
	data *showcase.ShowcaseData
}

// New creates a new in-memory store holding no collection.
func New() *Store {
	return &Store{}
}

// NewWithData creates a store pre-seeded with a collection.
func NewWithData(data *showcase.ShowcaseData) *Store {
	return &Store{data: data.Clone()}
}

// Load retrieves the stored collection.
func (s *Store) Load(ctx context.Context) (*showcase.ShowcaseData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, showcase.ErrDataNotFound
	}
	return s.data.Clone(), nil
}

// Save replaces the stored collection wholesale.
func (s *Store) Save(ctx context.Context, data *showcase.ShowcaseData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data.Clone()
	return nil
}
