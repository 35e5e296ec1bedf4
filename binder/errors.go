package binder

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/core"
)

// Binding errors. All of them are caller-input faults and map to 4xx responses.
var (
	ErrUnsupportedMediaType   = core.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type", "unsupported media type")
	ErrMissingContentType     = core.NewHTTPError(http.StatusBadRequest, "missing_content_type", "missing content type")
	ErrInvalidJSON            = core.NewHTTPError(http.StatusBadRequest, "invalid_json", "invalid JSON")
	ErrBodyTooLarge           = core.NewHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large", "request body too large")
	ErrMalformedMultipartBody = core.NewHTTPError(http.StatusBadRequest, "malformed_multipart_body", "malformed multipart body")
	ErrMissingPartName        = core.NewHTTPError(http.StatusBadRequest, "missing_part_name", "multipart part has no name")
	ErrMissingRequiredPart    = core.NewHTTPError(http.StatusBadRequest, "missing_required_part", "missing required multipart part")
)

// MissingRequiredPartError names the required part absent from a multipart body.
// It matches ErrMissingRequiredPart with errors.Is.
type MissingRequiredPartError struct {
	Name string
}

func (e *MissingRequiredPartError) Error() string {
	return fmt.Sprintf("multipart request is missing required part %q", e.Name)
}

func (e *MissingRequiredPartError) Unwrap() error {
	return ErrMissingRequiredPart
}
