package store

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/farihasabaya/storefront/internal/errors"
)

// MemoryRepository implements Repository in process memory.
// Readers share a lock and receive clones; writers are serialized.
type MemoryRepository[T Record[T]] struct {
	mu       sync.RWMutex
	order    []string
	items    map[string]T
	notFound error
}

// NewMemoryRepository creates an empty repository that reports notFound for unknown IDs.
func NewMemoryRepository[T Record[T]](notFound error) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		items:    make(map[string]T),
		notFound: notFound,
	}
}

func (m *MemoryRepository[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id].Clone())
	}
	return out, nil
}

func (m *MemoryRepository[T]) FindByID(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.items[id]
	if !ok {
		var zero T
		return zero, m.notFound
	}
	return rec.Clone(), nil
}

func (m *MemoryRepository[T]) Create(_ context.Context, rec T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := rec.GetID()
	if _, exists := m.items[id]; exists {
		var zero T
		return zero, fmt.Errorf("create %s: %w", id, apperrors.ErrDuplicateID)
	}
	m.items[id] = rec.Clone()
	m.order = append(m.order, id)
	return rec.Clone(), nil
}

func (m *MemoryRepository[T]) Mutate(_ context.Context, id string, fn func(*T) error) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	current, ok := m.items[id]
	if !ok {
		return zero, m.notFound
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return zero, err
	}
	if next.GetID() != id {
		return zero, fmt.Errorf("mutate %s: record id cannot change", id)
	}
	m.items[id] = next.Clone()
	return next, nil
}

func (m *MemoryRepository[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return m.notFound
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
