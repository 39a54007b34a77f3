package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"bugg-go/internal/bugg"
)

// GCSStore uploads objects to Google Cloud Storage. It authenticates with the
// service-account payload embedded in the SD card's config.json; the client is
// created on first use so a missing config.json is reported by validation first.
type GCSStore struct {
	credentialsFile string
	client          *storage.Client
}

// NewGCSStore creates a GCS store that authenticates with credentialsFile.
func NewGCSStore(credentialsFile string) *GCSStore {
	return &GCSStore{credentialsFile: credentialsFile}
}

// connect creates the storage client if it does not exist yet.
func (s *GCSStore) connect(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(s.credentialsFile))
	if err != nil {
		return fmt.Errorf("creating gcs client from %s: %w", s.credentialsFile, err)
	}
	s.client = client
	return nil
}

// UploadObject streams r to gs://bucket/key. The write carries a
// does-not-exist precondition so an existing object is never replaced.
func (s *GCSStore) UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*bugg.ObjectInfo, error) {
	if err := s.connect(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obj := s.client.Bucket(bucket).Object(key).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	written, err := io.Copy(w, r)
	if err != nil {
		// Cancelling before Close aborts the upload.
		cancel()
		w.Close()
		return nil, fmt.Errorf("uploading to gs://%s/%s: %w", bucket, key, err)
	}
	if written != size {
		cancel()
		w.Close()
		return nil, fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return nil, fmt.Errorf("%w: gs://%s/%s", ErrObjectExists, bucket, key)
		}
		return nil, fmt.Errorf("uploading to gs://%s/%s: %w", bucket, key, err)
	}

	info := &bugg.ObjectInfo{Bucket: bucket, Key: key, Size: size, ContentType: contentType}
	if attrs := w.Attrs(); attrs != nil {
		info.Size = attrs.Size
		info.ContentType = attrs.ContentType
	}
	return info, nil
}

// ValidateSetup loads the service-account credentials. It makes no network
// calls: the drop-box account may not be allowed to read bucket metadata.
func (s *GCSStore) ValidateSetup(ctx context.Context) error {
	return s.connect(ctx)
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Compile-time check that GCSStore implements bugg.BlobStore interface
var _ bugg.BlobStore = (*GCSStore)(nil)
