// Package mongo stores entities in MongoDB, one collection per resource type
// with the entity id as _id.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/mpjsonapi/crud"
)

// Collection is the subset of *mongo.Collection the store uses.
type Collection interface {
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// Store is a crud.Store backed by MongoDB.
type Store struct {
	collection func(resourceType string) Collection
}

// New stores each resource type in the db collection of the same name,
// prefixed with prefix.
func New(db *mongo.Database, prefix string) *Store {
	return NewWithCollections(func(resourceType string) Collection {
		return db.Collection(prefix + resourceType)
	})
}

// NewWithCollections resolves collections through fn.
func NewWithCollections(fn func(resourceType string) Collection) *Store {
	return &Store{collection: fn}
}

// Save upserts e by id.
func (s *Store) Save(ctx context.Context, e *crud.Entity) error {
	doc := *e
	if doc.Attributes == nil {
		doc.Attributes = map[string]any{}
	}

	_, err := s.collection(e.Type).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: e.ID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace entity: %w", err)
	}
	return nil
}

// Find returns crud.ErrEntityNotFound when no document matches.
func (s *Store) Find(ctx context.Context, resourceType, id string) (*crud.Entity, error) {
	var e crud.Entity
	err := s.collection(resourceType).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s %s", crud.ErrEntityNotFound, resourceType, id)
		}
		return nil, fmt.Errorf("find entity: %w", err)
	}
	if e.Attributes == nil {
		e.Attributes = map[string]any{}
	}
	e.Type = resourceType
	return &e, nil
}
