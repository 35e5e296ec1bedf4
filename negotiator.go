package mpjsonapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mpjsonapi/jsonapi"
)

// MultipartMediaType is the content type prefix that selects MultipartPath.
const MultipartMediaType = "multipart/form-data"

// HandlingPath is the way a request is processed. It is decided once per request.
type HandlingPath int

const (
	MultipartPath HandlingPath = iota + 1
	DelegatedJSONAPIPath
)

func (p HandlingPath) String() string {
	switch p {
	case MultipartPath:
		return "multipart"
	case DelegatedJSONAPIPath:
		return "jsonapi"
	default:
		return "unknown"
	}
}

// MethodChecker enforces the request rules of the delegated JSON:API path.
type MethodChecker interface {
	CheckRequestMethods(r *http.Request) error
}

// Negotiator chooses the HandlingPath of a request.
type Negotiator struct {
	checker MethodChecker
}

// NewNegotiator creates a negotiator falling back to checker for non-multipart
// content types. A nil checker uses the JSON:API rules of package jsonapi.
func NewNegotiator(checker MethodChecker) *Negotiator {
	if checker == nil {
		checker = jsonapi.Checker{}
	}
	return &Negotiator{checker: checker}
}

// Classify returns the handling path of r.
//
// PUT always fails with ErrUnsupportedMethod. A request without a content type
// is delegated, a multipart/form-data content type selects MultipartPath and
// anything else is delegated only when the checker accepts it; otherwise
// Classify fails with ErrUnsupportedContentType.
func (n *Negotiator) Classify(r *http.Request) (HandlingPath, error) {
	if r.Method == http.MethodPut {
		return 0, ErrUnsupportedMethod
	}

	contentType := strings.TrimSpace(r.Header.Get("Content-Type"))
	if contentType == "" {
		return DelegatedJSONAPIPath, nil
	}

	if isMultipartFormData(contentType) {
		return MultipartPath, nil
	}

	if err := n.checker.CheckRequestMethods(r); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedContentType, err)
	}

	return DelegatedJSONAPIPath, nil
}

// isMultipartFormData compares the media type, parameters stripped, to
// multipart/form-data.
func isMultipartFormData(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.EqualFold(strings.TrimSpace(mediaType), MultipartMediaType)
}
