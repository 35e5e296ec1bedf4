package core

import "net/http"

// HTTPError is an error that knows which HTTP status it should be reported with.
// Key is a stable machine-readable code (used as the JSON:API error "code"),
// Message is the human-readable text returned by Error.
type HTTPError struct {
	Code    int    // HTTP status code
	Key     string // Stable error code, e.g. "missing_required_part"
	Message string // Human-readable message; falls back to Key when empty
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// StatusText returns the standard reason phrase for the status code.
func (e HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// IsClientError reports whether the error maps to a 4xx status.
func (e HTTPError) IsClientError() bool {
	return e.Code >= http.StatusBadRequest && e.Code < http.StatusInternalServerError
}

// 4xx Client Errors
var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrForbidden             = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrNotAcceptable         = HTTPError{Code: http.StatusNotAcceptable, Key: "not_acceptable"}
	ErrConflict              = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessableEntity   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
)

// 5xx Server Errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates a custom HTTP error with the given status code, key and message.
//
// Example:
//
//	var ErrMissingPartName = core.NewHTTPError(http.StatusBadRequest, "missing_part_name", "multipart part has no name")
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}
