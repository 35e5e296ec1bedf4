package binder

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
)

// DefaultMaxBodySize is the default upper bound for a multipart body held in memory (32MB).
const DefaultMaxBodySize = 32 << 20

// MultipartFormData is the media type of multipart requests this package parses.
const MultipartFormData = "multipart/form-data"

// Part is one named segment of a multipart body.
// Parts are created by ParseMultipart and must be treated as read-only.
type Part struct {
	// Name is the "name" parameter of the Content-Disposition header.
	Name string

	// Filename is the optional "filename" parameter of the Content-Disposition header.
	Filename string

	// Header contains the MIME header fields of the part.
	Header textproto.MIMEHeader

	// Body holds the raw part payload, exactly as sent.
	Body []byte
}

// Size returns the body size in bytes.
func (p *Part) Size() int64 {
	return int64(len(p.Body))
}

// ContentType returns the media type declared for the part.
// It checks the Content-Type header first, then falls back to
// detecting the type from the filename extension.
func (p *Part) ContentType() string {
	if ct := p.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil {
			return mediaType
		}
	}
	if p.Filename == "" {
		return ""
	}
	mediaType, _, _ := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(p.Filename)))
	return mediaType
}

// Boundary returns the boundary parameter of a multipart content type.
func Boundary(contentType string) (string, error) {
	if contentType == "" {
		return "", fmt.Errorf("%w: expected %s", ErrMissingContentType, MultipartFormData)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: invalid content type %q: %v", ErrMalformedMultipartBody, contentType, err)
	}
	if mediaType != MultipartFormData {
		return "", fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mediaType, MultipartFormData)
	}

	boundary := params["boundary"]
	if boundary == "" {
		return "", fmt.Errorf("%w: missing boundary parameter", ErrMalformedMultipartBody)
	}

	return boundary, nil
}

// ParseMultipart splits a multipart body into its parts in a single pass.
// Parts are returned in source order.
//
// It fails with ErrMalformedMultipartBody when boundary markers are missing,
// a part is truncated, a part has no Content-Disposition header or two parts
// share a name, and with ErrMissingPartName when a Content-Disposition header
// has no name parameter.
//
// Example:
//
//	parts, err := binder.ParseMultipart(r.Body, "X")
//	if err != nil {
//		return err
//	}
//	set, err := binder.ExtractParts(parts)
func ParseMultipart(body io.Reader, boundary string) ([]*Part, error) {
	if boundary == "" {
		return nil, fmt.Errorf("%w: empty boundary", ErrMalformedMultipartBody)
	}
	if body == nil {
		body = http.NoBody
	}

	reader := multipart.NewReader(body, boundary)
	seen := make(map[string]struct{})

	var parts []*Part
	for index := 0; ; index++ {
		// Raw parts keep the body byte-for-byte, no transfer decoding.
		raw, err := reader.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classifyBodyError(err, index)
		}

		part, err := readPart(raw, index)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[part.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate part name %q", ErrMalformedMultipartBody, part.Name)
		}
		seen[part.Name] = struct{}{}

		parts = append(parts, part)
	}

	return parts, nil
}

// ParseMultipartRequest parses the body of a multipart request.
// The boundary is taken from the Content-Type header and at most maxBytes
// are read; a non-positive maxBytes means DefaultMaxBodySize.
func ParseMultipartRequest(r *http.Request, maxBytes int64) ([]*Part, error) {
	boundary, err := Boundary(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}

	body := r.Body
	if body == nil {
		body = http.NoBody
	}

	return ParseMultipart(http.MaxBytesReader(nil, body, maxBytes), boundary)
}

// readPart reads a single raw part into memory and validates its Content-Disposition.
func readPart(raw *multipart.Part, index int) (*Part, error) {
	defer func() { _ = raw.Close() }()

	disposition := raw.Header.Get("Content-Disposition")
	if disposition == "" {
		return nil, fmt.Errorf("%w: part %d has no Content-Disposition header", ErrMalformedMultipartBody, index)
	}

	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return nil, fmt.Errorf("%w: part %d has an invalid Content-Disposition header: %v", ErrMalformedMultipartBody, index, err)
	}

	name := params["name"]
	if name == "" {
		return nil, fmt.Errorf("%w: part %d", ErrMissingPartName, index)
	}

	body, err := io.ReadAll(raw)
	if err != nil {
		return nil, classifyBodyError(err, index)
	}

	return &Part{
		Name:     name,
		Filename: params["filename"],
		Header:   raw.Header,
		Body:     body,
	}, nil
}

func classifyBodyError(err error, index int) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: part %d is truncated", ErrMalformedMultipartBody, index)
	}
	return fmt.Errorf("%w: %v", ErrMalformedMultipartBody, err)
}
