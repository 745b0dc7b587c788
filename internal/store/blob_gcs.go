package store

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSReader reads objects from Google Cloud Storage.
type GCSReader struct {
	client *gcs.Client
	bucket string
}

// NewGCSReader uses Application Default Credentials.
func NewGCSReader(ctx context.Context, bucket string) (*GCSReader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSReader{client: client, bucket: bucket}, nil
}

func (r *GCSReader) GetObject(ctx context.Context, key string) ([]byte, error) {
	rd, err := r.client.Bucket(r.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer rd.Close()
	return io.ReadAll(rd)
}

func (r *GCSReader) Close() error {
	return r.client.Close()
}
