package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxJSONSize is the default maximum size for JSON documents (1MB).
const DefaultMaxJSONSize = 1 << 20

// DecodeJSON decodes exactly one JSON value from data into v.
// Unknown fields are allowed; trailing data after the value is not.
//
// Example:
//
//	var doc jsonapi.Document
//	if err := binder.DecodeJSON(part.Body, &doc); err != nil {
//		return err // wraps ErrInvalidJSON
//	}
func DecodeJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}
	if len(data) > DefaultMaxJSONSize {
		return fmt.Errorf("%w: document too large (max %d bytes)", ErrBodyTooLarge, DefaultMaxJSONSize)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))

	if err := decoder.Decode(v); err != nil {
		return classifyJSONError(err)
	}

	// Ensure entire body was consumed
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}

	return nil
}

// ReadJSON reads at most DefaultMaxJSONSize bytes from r and decodes them with DecodeJSON.
func ReadJSON(r io.Reader, v any) error {
	if r == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}

	body, err := io.ReadAll(io.LimitReader(r, DefaultMaxJSONSize+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %v", ErrInvalidJSON, err)
	}

	return DecodeJSON(body, v)
}

func classifyJSONError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("%w: syntax error at offset %d: %v", ErrInvalidJSON, syntaxErr.Offset, err)
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: %s must be %s", ErrInvalidJSON, typeErr.Field, typeErr.Type)
	case errors.Is(err, io.ErrUnexpectedEOF), strings.Contains(err.Error(), "unexpected end of JSON"):
		return fmt.Errorf("%w: unexpected end of JSON", ErrInvalidJSON)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
}
