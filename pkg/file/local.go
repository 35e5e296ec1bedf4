package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage for the local filesystem.
// All operations are confined to baseDir.
type LocalStorage struct {
	baseDir       string        // Absolute path - all files stored within this directory
	baseURL       string        // URL prefix for serving files (e.g., "/files/")
	uploadTimeout time.Duration
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout sets the timeout for upload operations.
// If not set, relies on context deadline from caller.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.uploadTimeout = timeout
	}
}

// NewLocalStorage creates a new local filesystem storage.
// baseDir is resolved to an absolute path and created if it doesn't exist.
// baseURL is used for generating public URLs (e.g., "/files/").
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// BaseDir returns the absolute storage root.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Save writes the upload to key. An existing file is replaced.
// Partial files are removed on errors.
func (s *LocalStorage) Save(ctx context.Context, u Upload, key string) (*Object, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(u.Content) == 0 {
		return nil, ErrEmptyUpload
	}

	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	if _, err := dst.Write(u.Content); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if err := ctx.Err(); err != nil {
		_ = os.Remove(absPath)
		return nil, err
	}

	return newObject(u, key), nil
}

// Delete removes a single file. Directories are refused.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, key)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return nil
}

// Exists checks if a file exists.
// Returns false for invalid paths or on context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, key string) bool {
	if ctx.Err() != nil {
		return false
	}

	key, err := cleanKey(key)
	if err != nil {
		return false
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return false
	}

	_, err = os.Stat(absPath)
	return err == nil
}

// URL returns the public URL for a file.
func (s *LocalStorage) URL(key string) string {
	key = filepath.ToSlash(filepath.Clean(key))
	return s.baseURL + strings.TrimPrefix(key, "/")
}

// resolvePath joins key to baseDir and ensures the result stays inside it.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}

	return absPath, nil
}
