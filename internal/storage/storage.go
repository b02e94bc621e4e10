// Package storage uploads generated artifacts and returns their location.
package storage

import (
	"context"
	"fmt"
	"path"

	"go-hrdocs/internal/config"
)

const (
	DriverGCS   = "gcs"
	DriverLocal = "local"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Blob interface {
	// Put stores content under key and returns a location string that
	// can be saved with the document.
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Close() error
}

func New(ctx context.Context, cfg config.StorageConfig) (Blob, error) {
	switch cfg.Driver {
	case DriverGCS:
		return NewGCS(ctx, cfg.Bucket, cfg.CredentialsJSON)
	case DriverLocal, "":
		return NewLocal(cfg.LocalDir)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// DocumentKey is the object key for a generated document artifact.
func DocumentKey(tenantID, documentType, subjectID, name, ext string) string {
	return path.Join("tenants", tenantID, "documents", documentType, subjectID, name+"."+ext)
}
