// Package jsonapi implements the parts of the JSON:API format the service speaks:
// resource documents, error documents, request content negotiation and
// structural validation of incoming documents.
//
// Documents are decoded with DecodeDocument, which rejects empty bodies and
// trailing data, and checked with ValidateDocument against the resource type
// and identifier taken from the route:
//
//	doc, err := jsonapi.DecodeDocument(r.Body)
//	if err != nil {
//		return err
//	}
//	if err := jsonapi.ValidateDocument(doc, "widgets", chi.URLParam(r, "id")); err != nil {
//		return err
//	}
//
// CheckRequestMethods enforces the request rules of the format: PUT is not
// supported (updates use PATCH) and the content type must be the JSON:API media
// type without parameters. Plain application/json is accepted as well.
package jsonapi
