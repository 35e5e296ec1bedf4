package mpjsonapi

import (
	"maps"

	"github.com/dmitrymomot/mpjsonapi/crud"
	"github.com/dmitrymomot/mpjsonapi/pkg/event"
)

// FieldSet holds attributes contributed by file processing.
type FieldSet map[string]any

// MergeInto sets every field on e. Merging an empty set leaves e unchanged.
func (fs FieldSet) MergeInto(e *crud.Entity) {
	for field, value := range fs {
		e.Set(field, value)
	}
}

// fieldSetFrom reads a FieldSet from EventFileProcessed data.
// Plain maps are accepted too.
func fieldSetFrom(e *event.Event) (FieldSet, bool) {
	switch data := e.Data.(type) {
	case FieldSet:
		return maps.Clone(data), true
	case map[string]any:
		return maps.Clone(FieldSet(data)), true
	default:
		return nil, false
	}
}
