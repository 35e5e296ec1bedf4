package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMIMEType is reported when content detection fails.
const DefaultMIMEType = "application/octet-stream"

// Upload is a file received in a request.
type Upload struct {
	Filename string
	Content  []byte
}

// Size returns the content length in bytes.
func (u Upload) Size() int64 {
	return int64(len(u.Content))
}

// Object represents stored file metadata.
type Object struct {
	Key       string // Storage key relative to the backend root
	Filename  string // Sanitized original filename
	Size      int64
	MIMEType  string
	Extension string
}

// Storage interface for different backends.
type Storage interface {
	// Save stores the upload under key and returns metadata.
	Save(ctx context.Context, u Upload, key string) (*Object, error)
	// Delete removes a single file.
	Delete(ctx context.Context, key string) error
	// Exists checks if a file exists.
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL for a file.
	URL(key string) string
}

var imageMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/heic":    true,
	"image/heif":    true,
	"image/avif":    true,
	"image/jxl":     true,
}

// DetectMIMEType returns the media type of content based on its magic bytes.
// Parameters such as charset are dropped.
//
// Example:
//
//	file.DetectMIMEType(pngBytes) // "image/png"
func DetectMIMEType(content []byte) string {
	if len(content) == 0 {
		return DefaultMIMEType
	}
	mediaType, _, _ := strings.Cut(mimetype.Detect(content).String(), ";")
	return strings.TrimSpace(mediaType)
}

// IsImage reports whether mimeType is a known image type.
func IsImage(mimeType string) bool {
	return imageMIMETypes[mimeType]
}

// Extension returns the extension of filename including the dot, lowercased.
// When filename has none, the extension registered for mimeType is used.
func Extension(filename, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(SanitizeFilename(filename))); ext != "" && ext != "." {
		return ext
	}
	if m := mimetype.Lookup(mimeType); m != nil {
		return m.Extension()
	}
	return ""
}

// ValidateSize checks if size is within the allowed limit. A non-positive limit allows any size.
//
// Example:
//
//	if err := file.ValidateSize(u.Size(), 5<<20); err != nil { // 5MB limit
//	    return err
//	}
func ValidateSize(size, maxBytes int64) error {
	if maxBytes <= 0 || size <= maxBytes {
		return nil
	}
	return fmt.Errorf("file size %s exceeds %s limit: %w",
		humanize.IBytes(uint64(size)), humanize.IBytes(uint64(maxBytes)), ErrFileTooLarge)
}

// ValidateMIMEType checks mimeType against the allowed list.
// Entries ending in "/*" match a whole top-level type. No entries allow every type.
//
// Example:
//
//	err := file.ValidateMIMEType(file.DetectMIMEType(body), "image/*", "application/pdf")
func ValidateMIMEType(mimeType string, allowedTypes ...string) error {
	if len(allowedTypes) == 0 {
		return nil
	}

	matches := func(allowed string) bool {
		if prefix, ok := strings.CutSuffix(allowed, "/*"); ok {
			return strings.HasPrefix(mimeType, prefix+"/")
		}
		return allowed == mimeType
	}
	if slices.ContainsFunc(allowedTypes, matches) {
		return nil
	}

	return fmt.Errorf("MIME type %s not in allowed types %v: %w", mimeType, allowedTypes, ErrMIMETypeNotAllowed)
}

// Hash returns the hex encoded SHA-256 of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// SanitizeFilename removes any path components and dangerous characters from a filename.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// cleanKey normalizes an object key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}

func newObject(u Upload, key string) *Object {
	mimeType := DetectMIMEType(u.Content)
	return &Object{
		Key:       key,
		Filename:  SanitizeFilename(u.Filename),
		Size:      u.Size(),
		MIMEType:  mimeType,
		Extension: Extension(u.Filename, mimeType),
	}
}
