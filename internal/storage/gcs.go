package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSArchive mirrors run artifacts to a Cloud Storage bucket.
type GCSArchive struct {
	client *storage.Client
	bucket string
}

func NewGCSArchive(ctx context.Context, bucket string) (*GCSArchive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSArchive{
		client: client,
		bucket: bucket,
	}, nil
}

func (a *GCSArchive) Close() error {
	return a.client.Close()
}

// Upload writes one artifact to the bucket.
func (a *GCSArchive) Upload(ctx context.Context, objectName string, data []byte) error {
	w := a.client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write gs://%s/%s: %w", a.bucket, objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize gs://%s/%s: %w", a.bucket, objectName, err)
	}
	return nil
}
