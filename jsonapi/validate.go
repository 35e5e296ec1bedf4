package jsonapi

import (
	"github.com/dmitrymomot/mpjsonapi/pkg/validator"
)

// JSON pointers reported in validation errors.
const (
	PointerData       = "/data"
	PointerType       = "/data/type"
	PointerID         = "/data/id"
	PointerAttributes = "/data/attributes"
)

// AttributePointer returns the JSON pointer of a resource attribute.
func AttributePointer(name string) string {
	return PointerAttributes + "/" + name
}

// ValidateDocument checks the structure of an incoming resource document.
//
// The document must carry primary data with a type equal to resourceType.
// When id is not empty the request targets an existing resource, so the
// document must carry the same id. A missing type or id is reported as
// validator.ValidationErrors; a type or id that differs from the endpoint
// is reported as ErrResourceTypeMismatch or ErrResourceIDMismatch.
func ValidateDocument(doc *Document, resourceType, id string) error {
	if doc == nil || doc.Data == nil {
		return ErrMissingData
	}
	res := doc.Data

	if err := validator.Apply(
		validator.Required(PointerType, res.Type),
		validator.When(id != "", validator.Required(PointerID, res.ID)),
	); err != nil {
		return err
	}

	if resourceType != "" && res.Type != resourceType {
		return ErrResourceTypeMismatch
	}
	if id != "" && res.ID != id {
		return ErrResourceIDMismatch
	}

	return nil
}
