package main

import (
	"github.com/dmitrymomot/mpjsonapi/pkg/file"
)

type appConfig struct {
	Env         string   `env:"APP_ENV" envDefault:"development"`
	Name        string   `env:"APP_NAME" envDefault:"mpjsonapi"`
	Resources   []string `env:"APP_RESOURCES" envSeparator:"," envDefault:"widgets"`
	MaxBodySize int64    `env:"APP_MAX_BODY_SIZE" envDefault:"33554432"`

	// EntityStore is one of memory, postgres or mongo.
	EntityStore string `env:"ENTITY_STORE" envDefault:"memory"`
	// FileStorage is one of local, s3 or minio.
	FileStorage string `env:"FILE_STORAGE" envDefault:"local"`
}

type localConfig struct {
	Dir     string `env:"FILE_LOCAL_DIR" envDefault:"./uploads"`
	BaseURL string `env:"FILE_LOCAL_BASE_URL" envDefault:"http://localhost:8080/files/"`
}

type s3Config struct {
	Bucket         string `env:"S3_BUCKET,required"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`
	BaseURL        string `env:"S3_BASE_URL"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"`
}

func (c s3Config) storage() file.S3Config {
	return file.S3Config{
		Bucket:         c.Bucket,
		Region:         c.Region,
		AccessKeyID:    c.AccessKeyID,
		SecretKey:      c.SecretKey,
		Endpoint:       c.Endpoint,
		BaseURL:        c.BaseURL,
		ForcePathStyle: c.ForcePathStyle,
	}
}

type minioConfig struct {
	Endpoint        string `env:"MINIO_ENDPOINT,required"`
	AccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	Bucket          string `env:"MINIO_BUCKET,required"`
	Region          string `env:"MINIO_REGION"`
	UseSSL          bool   `env:"MINIO_USE_SSL"`
	BaseURL         string `env:"MINIO_BASE_URL"`
}

func (c minioConfig) storage() file.MinIOConfig {
	return file.MinIOConfig{
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		Bucket:          c.Bucket,
		Region:          c.Region,
		UseSSL:          c.UseSSL,
		BaseURL:         c.BaseURL,
	}
}
