// Package memory keeps app state in process memory. It backs tests and the
// "memory" storage backend, where losing state on restart is acceptable.
package memory

import (
	"alcyxob/fitgpt/internal/repository"
	"context"
	"sync"
)

type memoryStateRepository struct {
	mu   sync.RWMutex
	docs map[repository.StateKey][]byte
}

// NewStateRepository returns an empty in-memory StateRepository.
func NewStateRepository() repository.StateRepository {
	return &memoryStateRepository{docs: make(map[repository.StateKey][]byte)}
}

func (r *memoryStateRepository) Get(_ context.Context, key repository.StateKey) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.docs[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *memoryStateRepository) Set(_ context.Context, key repository.StateKey, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	r.mu.Lock()
	r.docs[key] = v
	r.mu.Unlock()
	return nil
}

func (r *memoryStateRepository) Remove(_ context.Context, key repository.StateKey) error {
	r.mu.Lock()
	delete(r.docs, key)
	r.mu.Unlock()
	return nil
}
