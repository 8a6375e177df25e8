// Package storage handles avatar files on an S3-compatible bucket.
// Uploads go directly from the browser via presigned URLs; the server
// only issues URLs and deletes replaced objects.
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the settings required to reach the bucket.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService is the interface the handlers depend on.
type StorageService interface {
	// PresignUpload generates a pre-signed PUT URL for the given object
	// key, MIME type and size.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService returns the S3-compatible implementation.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	return newS3Client(cfg)
}
