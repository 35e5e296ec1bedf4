package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient defines the MinIO operations used by MinIOStorage.
type MinIOClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

// MinIOConfig contains configuration for MinIO storage.
type MinIOConfig struct {
	Endpoint        string // host:port, no scheme
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
	BaseURL         string // Public URL base for serving files
}

// MinIOStorage implements Storage on top of the MinIO client.
type MinIOStorage struct {
	client  MinIOClient
	bucket  string
	region  string
	baseURL string
}

// MinIOOption configures MinIOStorage.
type MinIOOption func(*MinIOStorage)

// WithMinIOClient sets a pre-configured client. Useful for testing with mocks.
func WithMinIOClient(client MinIOClient) MinIOOption {
	return func(s *MinIOStorage) {
		s.client = client
	}
}

// NewMinIOStorage creates a MinIO storage instance.
func NewMinIOStorage(cfg MinIOConfig, opts ...MinIOOption) (*MinIOStorage, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, ErrInvalidConfig
	}

	s := &MinIOStorage{
		bucket: cfg.Bucket,
		region: cfg.Region,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			Region: cfg.Region,
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		s.client = client
	}

	s.baseURL = cfg.BaseURL
	if s.baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		s.baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	if !strings.HasSuffix(s.baseURL, "/") {
		s.baseURL += "/"
	}

	return s, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *MinIOStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return classifyMinIOError(err, "check bucket")
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return classifyMinIOError(err, "create bucket")
	}
	return nil
}

func classifyMinIOError(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound && resp.Code != "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrFileNotFound, err)
	case resp.Code == "NoSuchBucket":
		return ErrBucketNotFound
	case resp.Code == "AccessDenied":
		return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
	case resp.Code == "SlowDown" || resp.StatusCode == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}

// Save uploads the content as a single object.
func (s *MinIOStorage) Save(ctx context.Context, u Upload, key string) (*Object, error) {
	if len(u.Content) == 0 {
		return nil, ErrEmptyUpload
	}

	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	obj := newObject(u, key)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(u.Content), obj.Size, minio.PutObjectOptions{
		ContentType:  obj.MIMEType,
		UserMetadata: map[string]string{"original-name": obj.Filename},
	})
	if err != nil {
		return nil, classifyMinIOError(err, "upload file")
	}

	return obj, nil
}

// Delete removes a single object.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return classifyMinIOError(err, "check file")
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return classifyMinIOError(err, "delete file")
	}
	return nil
}

// Exists checks if an object exists.
func (s *MinIOStorage) Exists(ctx context.Context, key string) bool {
	key, err := cleanKey(key)
	if err != nil {
		return false
	}
	_, err = s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	return err == nil
}

// URL returns the public URL for a file.
func (s *MinIOStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}
