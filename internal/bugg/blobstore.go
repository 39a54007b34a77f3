package bugg

import (
	"context"
	"io"
)

// ObjectInfo describes a committed object.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ContentType string
}

// BlobStore is the object storage the recordings are uploaded to.
type BlobStore interface {
	// UploadObject stores size bytes read from r under bucket/key.
	// An object already present at key is an error, never overwritten.
	UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*ObjectInfo, error)

	// ValidateSetup verifies the store is configured and its credentials load.
	ValidateSetup(ctx context.Context) error
}
