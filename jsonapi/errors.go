package jsonapi

import (
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/core"
)

var (
	ErrUnsupportedMethod    = core.NewHTTPError(http.StatusBadRequest, "unsupported_method", "JSON API does not support the PUT method, use PATCH instead")
	ErrUnsupportedMediaType = core.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type", "JSON API requests require the \""+MediaType+"\" Content-Type header")
	ErrMediaTypeParameters  = core.NewHTTPError(http.StatusUnsupportedMediaType, "media_type_parameters", "JSON API media type must not carry parameters")
	ErrMissingData          = core.NewHTTPError(http.StatusBadRequest, "missing_data", "document must contain a primary data object")
	ErrResourceTypeMismatch = core.NewHTTPError(http.StatusConflict, "resource_type_mismatch", "resource type does not match the endpoint")
	ErrResourceIDMismatch   = core.NewHTTPError(http.StatusConflict, "resource_id_mismatch", "resource id does not match the endpoint")
	ErrInvalidDocument      = core.NewHTTPError(http.StatusBadRequest, "invalid_document", "invalid JSON API document")
)
