// Package memory provides an in-process crud.Store for development and tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrymomot/mpjsonapi/crud"
)

// Store keeps entities in a map keyed by type and id.
type Store struct {
	mu       sync.RWMutex
	entities map[string]map[string]crud.Entity
}

func New() *Store {
	return &Store{entities: make(map[string]map[string]crud.Entity)}
}

// Save stores a copy of e.
func (s *Store) Save(ctx context.Context, e *crud.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.entities[e.Type]
	if !ok {
		byID = make(map[string]crud.Entity)
		s.entities[e.Type] = byID
	}
	byID[e.ID] = clone(e)
	return nil
}

// Find returns a copy of the stored entity.
func (s *Store) Find(ctx context.Context, resourceType, id string) (*crud.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[resourceType][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", crud.ErrEntityNotFound, resourceType, id)
	}
	c := clone(&e)
	return &c, nil
}

// Len returns the number of stored entities of resourceType.
func (s *Store) Len(resourceType string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities[resourceType])
}

func clone(e *crud.Entity) crud.Entity {
	c := *e
	c.Attributes = maps.Clone(e.Attributes)
	return c
}
