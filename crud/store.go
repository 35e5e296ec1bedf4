package crud

import "context"

// Store persists entities.
type Store interface {
	// Save inserts the entity or replaces the stored one with the same type and id.
	Save(ctx context.Context, e *Entity) error
	// Find returns ErrEntityNotFound when no entity matches.
	Find(ctx context.Context, resourceType, id string) (*Entity, error)
}
