package jsonapi

import (
	"fmt"
	"mime"
	"net/http"
)

// CheckRequestMethods enforces the JSON:API request rules.
// PUT is rejected with ErrUnsupportedMethod. A request without a body content
// type passes. Otherwise the content type must be MediaType without
// parameters or plain application/json.
func CheckRequestMethods(r *http.Request) error {
	if r.Method == http.MethodPut {
		return ErrUnsupportedMethod
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case MediaType:
		if len(params) > 0 {
			return ErrMediaTypeParameters
		}
		return nil
	case "application/json":
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}
}

// Checker adapts CheckRequestMethods to interfaces expecting a method.
type Checker struct{}

func (Checker) CheckRequestMethods(r *http.Request) error {
	return CheckRequestMethods(r)
}
