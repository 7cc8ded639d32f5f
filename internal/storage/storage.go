// Package storage contains read access to S3-compatible object stores.
// Model artifacts are published there and pulled to local disk at start.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is the object storage client the service depends on.
// Methods use context and streaming readers; callers own the returned reader.
type Storage interface {
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without downloading the content.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
}
