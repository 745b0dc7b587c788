package store

import (
	"bytes"
	"context"
	"fmt"
)

// ObjectReader fetches a single object from blob storage.
type ObjectReader interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// BlobSource loads the table from a CSV object held in S3 or GCS.
type BlobSource struct {
	reader ObjectReader
	key    string
}

// NewBlobSource wraps an ObjectReader so the object at key is parsed as CSV on every Load.
func NewBlobSource(r ObjectReader, key string) *BlobSource {
	return &BlobSource{reader: r, key: key}
}

func (s *BlobSource) Load(ctx context.Context) (*Table, error) {
	data, err := s.reader.GetObject(ctx, s.key)
	if err != nil {
		return nil, err
	}
	table, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse object %s: %w", s.key, err)
	}
	return table, nil
}
