package testutil

import (
	"context"
	"errors"
	"io"

	"bugg-go/internal/blobstore"
	"bugg-go/internal/bugg"
)

// NewTestStore creates a new in-memory blob store for testing.
func NewTestStore() *blobstore.MemoryStore {
	return blobstore.NewMemoryStore("test-store")
}

// ErrInjected is the error returned by FailingStore.
var ErrInjected = errors.New("injected upload failure")

// FailingStore wraps a store and fails the upload with the given 1-based index.
type FailingStore struct {
	bugg.BlobStore
	FailAt   int
	SetupErr error
	calls    int
}

// NewFailingStore creates a FailingStore that fails the failAt-th upload.
func NewFailingStore(inner bugg.BlobStore, failAt int) *FailingStore {
	return &FailingStore{BlobStore: inner, FailAt: failAt}
}

func (s *FailingStore) UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*bugg.ObjectInfo, error) {
	s.calls++
	if s.calls == s.FailAt {
		return nil, ErrInjected
	}
	return s.BlobStore.UploadObject(ctx, bucket, key, r, size, contentType)
}

func (s *FailingStore) ValidateSetup(ctx context.Context) error {
	if s.SetupErr != nil {
		return s.SetupErr
	}
	return s.BlobStore.ValidateSetup(ctx)
}

// Calls returns how many uploads were attempted.
func (s *FailingStore) Calls() int { return s.calls }
