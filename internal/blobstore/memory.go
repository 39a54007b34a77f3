package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"bugg-go/internal/bugg"
)

// ErrObjectExists is returned when an upload targets a key that is already taken.
var ErrObjectExists = errors.New("object already exists")

// MemoryObject is an object held by MemoryStore.
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// MemoryStore is an in-memory implementation of the BlobStore interface,
// useful for testing. It records keys in upload order.
// This implementation is safe for concurrent use.
type MemoryStore struct {
	name    string
	objects map[string]*MemoryObject // "bucket/key" -> object
	order   []string
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store with the given name.
func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:    name,
		objects: make(map[string]*MemoryObject),
	}
}

// objectKey returns the map key for a bucket/key pair.
func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

// UploadObject stores the content read from r under bucket/key.
func (m *MemoryStore) UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*bugg.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	if int64(len(data)) != size {
		return nil, fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := objectKey(bucket, key)
	if _, ok := m.objects[k]; ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrObjectExists, k, m.name)
	}
	m.objects[k] = &MemoryObject{Data: data, ContentType: contentType}
	m.order = append(m.order, k)

	return &bugg.ObjectInfo{Bucket: bucket, Key: key, Size: size, ContentType: contentType}, nil
}

// Get returns the object stored under bucket/key.
func (m *MemoryStore) Get(bucket, key string) (*MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[objectKey(bucket, key)]
	return obj, ok
}

// Keys returns every "bucket/key" in upload order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}

// ValidateSetup always succeeds for the memory store.
func (m *MemoryStore) ValidateSetup(context.Context) error {
	return nil
}

// Compile-time check that MemoryStore implements bugg.BlobStore interface
var _ bugg.BlobStore = (*MemoryStore)(nil)
