/*
Package storage provides object storage for place photos.

Photos never pass through the API server: clients upload and download directly
against S3-compatible storage using short-lived presigned URLs issued here.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the settings required to connect to the storage backend.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// StorageService defines the public interface for the photo storage service.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading a photo.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// PresignDownload generates a pre-signed URL for fetching a photo.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the photo stored under the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService initializes and returns a concrete StorageService.
// Only S3-compatible backends are currently supported.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	return newS3Client(cfg)
}
