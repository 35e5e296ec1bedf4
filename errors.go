package mpjsonapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mpjsonapi/binder"
	"github.com/dmitrymomot/mpjsonapi/core"
	"github.com/dmitrymomot/mpjsonapi/jsonapi"
)

// Request errors. Each maps to a 400 response.
var (
	ErrUnsupportedMethod      = jsonapi.ErrUnsupportedMethod
	ErrUnsupportedContentType = core.NewHTTPError(http.StatusBadRequest, "unsupported_content_type", "Multipart requests require the \""+MultipartMediaType+"\" Content-Type header")
	ErrInvalidEntityPayload   = core.NewHTTPError(http.StatusBadRequest, "invalid_entity_payload", "entity part is not a valid JSON API document")
	ErrMalformedMultipartBody = binder.ErrMalformedMultipartBody
	ErrMissingPartName        = binder.ErrMissingPartName
	ErrMissingRequiredPart    = binder.ErrMissingRequiredPart
)

// Collaborator contract errors.
var (
	ErrFieldSetAlreadyDelivered = errors.New("mpjsonapi: field set already delivered for this request")
	ErrHookNotArmed             = errors.New("mpjsonapi: field injection hook is not armed")
)

// MissingRequiredPartError names the absent part. It matches ErrMissingRequiredPart.
type MissingRequiredPartError = binder.MissingRequiredPartError
