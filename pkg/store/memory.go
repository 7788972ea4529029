package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and single-process use.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]Batch
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{batches: make(map[uuid.UUID]Batch)}
}

// Save stores a batch.
func (s *MemoryStore) Save(ctx context.Context, batch Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy the document so callers can't mutate stored data.
	stored := batch
	stored.Data = append([]byte(nil), batch.Data...)
	s.batches[batch.ID] = stored
	return nil
}

// Load retrieves a batch by ID.
func (s *MemoryStore) Load(ctx context.Context, id uuid.UUID) (Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[id]
	if !ok {
		return Batch{}, ErrBatchNotFound(id)
	}
	batch.Data = append([]byte(nil), batch.Data...)
	return batch, nil
}

// List returns batch metadata, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Batch, 0, len(s.batches))
	for _, batch := range s.batches {
		batch.Data = nil
		list = append(list, batch)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Delete removes a batch.
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
