// Package validator provides declarative validation rules.
//
// A Rule couples a Check function with the ValidationError reported when the
// check fails. Apply evaluates rules and aggregates failures into a
// ValidationErrors value, which implements error:
//
//	err := validator.Apply(
//		validator.Required("/data/type", res.Type),
//		validator.ValidUUID("/data/id", res.ID),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// one entry per failed rule
//	}
//
// Field names are free-form. Names starting with "/" are treated as JSON
// pointers by the HTTP error handler, anything else as an attribute name.
package validator
