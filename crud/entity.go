package crud

import (
	"maps"
	"time"

	"github.com/dmitrymomot/mpjsonapi/jsonapi"
)

// Entity is a stored resource.
type Entity struct {
	Type       string         `json:"type" bson:"type"`
	ID         string         `json:"id" bson:"_id"`
	Attributes map[string]any `json:"attributes" bson:"attributes"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewEntity creates an entity with an empty attribute set.
func NewEntity(resourceType, id string) *Entity {
	return &Entity{
		Type:       resourceType,
		ID:         id,
		Attributes: make(map[string]any),
	}
}

// Set assigns an attribute, replacing any previous value.
func (e *Entity) Set(field string, value any) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[field] = value
}

func (e *Entity) Get(field string) (any, bool) {
	v, ok := e.Attributes[field]
	return v, ok
}

func (e *Entity) Has(field string) bool {
	_, ok := e.Attributes[field]
	return ok
}

// Resource converts the entity to a JSON:API resource object.
func (e *Entity) Resource() *jsonapi.Resource {
	return &jsonapi.Resource{
		Type:       e.Type,
		ID:         e.ID,
		Attributes: maps.Clone(e.Attributes),
		Meta: map[string]any{
			"createdAt": e.CreatedAt,
			"updatedAt": e.UpdatedAt,
		},
	}
}
