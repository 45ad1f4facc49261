package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("entity not found")

// repository is a generic in-memory repository for any entity type T.
// Entities are stored by value; callers always receive copies.
type repository[T any] struct {
	mu       sync.RWMutex
	entities map[string]T
	idOf     func(*T) string
}

// New creates a repository that identifies entities with idOf.
func New[T any](idOf func(*T) string) *repository[T] {
	return &repository[T]{
		entities: make(map[string]T),
		idOf:     idOf,
	}
}

// Create stores a new entity. It fails if the ID is already taken.
func (r *repository[T]) Create(ctx context.Context, entity *T) error {
	id := r.idOf(entity)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[id]; ok {
		return fmt.Errorf("entity %s already exists", id)
	}
	r.entities[id] = *entity
	return nil
}

func (r *repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.entities[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &entity, nil
}

// Update replaces the entity stored under id.
func (r *repository[T]) Update(ctx context.Context, entity *T, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.entities[id] = *entity
	return nil
}

// DeleteWhere removes every entity matching the predicate and returns how many
// were removed.
func (r *repository[T]) DeleteWhere(ctx context.Context, match func(*T) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entities {
		if match(&e) {
			delete(r.entities, id)
			removed++
		}
	}
	return removed
}
