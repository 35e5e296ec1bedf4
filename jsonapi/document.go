package jsonapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/mpjsonapi/binder"
)

// MediaType is the JSON:API media type.
const MediaType = "application/vnd.api+json"

// Document is a top-level JSON:API document with a single primary resource.
type Document struct {
	Data    *Resource         `json:"data"`
	Meta    map[string]any    `json:"meta,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
	JSONAPI map[string]any    `json:"jsonapi,omitempty"`
}

// Resource is a JSON:API resource object.
type Resource struct {
	Type          string            `json:"type"`
	ID            string            `json:"id,omitempty"`
	Attributes    map[string]any    `json:"attributes,omitempty"`
	Relationships map[string]any    `json:"relationships,omitempty"`
	Links         map[string]string `json:"links,omitempty"`
	Meta          map[string]any    `json:"meta,omitempty"`
}

// ErrorDocument is a top-level JSON:API document carrying errors.
type ErrorDocument struct {
	Errors []ErrorObject  `json:"errors"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// ErrorObject describes a single problem encountered while processing a request.
type ErrorObject struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status,omitempty"`
	Code   string         `json:"code,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Source *ErrorSource   `json:"source,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// ErrorSource points at the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Header    string `json:"header,omitempty"`
}

// NewDocument wraps a resource into a document.
func NewDocument(res *Resource) *Document {
	return &Document{Data: res}
}

// DecodeDocument reads a single JSON:API document from r.
// Syntax and type errors wrap ErrInvalidDocument and binder.ErrInvalidJSON.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := binder.ReadJSON(r, &doc); err != nil {
		return nil, wrapDecodeError(err)
	}
	return &doc, nil
}

// ParseDocument decodes a JSON:API document held in memory.
func ParseDocument(data []byte) (*Document, error) {
	return DecodeDocument(bytes.NewReader(data))
}

func wrapDecodeError(err error) error {
	if errors.Is(err, binder.ErrBodyTooLarge) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
}
