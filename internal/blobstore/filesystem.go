package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bugg-go/internal/bugg"
)

// FileSystemStore is a filesystem-based implementation of the BlobStore interface.
// Objects are written as plain files:
//
//	<root>/
//	  <bucket>/
//	    proj_<project>/<device>/conf_<config>/<timestamp>.mp3
//
// The content type is not persisted.
type FileSystemStore struct {
	name string
	root string
}

// NewFileSystemStore creates a new filesystem store rooted at the given path.
func NewFileSystemStore(name, root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}

	return &FileSystemStore{
		name: name,
		root: root,
	}, nil
}

// objectPath maps bucket/key to a path under root, rejecting keys that would escape it.
func (s *FileSystemStore) objectPath(bucket, key string) (string, error) {
	clean := path.Clean("/" + bucket + "/" + key)
	if bucket == "" || key == "" || strings.Contains(bucket, "/") || clean != "/"+bucket+"/"+key {
		return "", fmt.Errorf("invalid object name %q in bucket %q", key, bucket)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// UploadObject writes the content read from r to <root>/<bucket>/<key>.
func (s *FileSystemStore) UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*bugg.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	destPath, err := s.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(destPath); err == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrObjectExists, bucket, key)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", destPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}

	if err := s.writeFile(destPath, r, size); err != nil {
		return nil, err
	}

	return &bugg.ObjectInfo{Bucket: bucket, Key: key, Size: size, ContentType: contentType}, nil
}

// ValidateSetup verifies that the store root is an accessible directory.
func (s *FileSystemStore) ValidateSetup(context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("%s store root not accessible: %w", s.name, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s store root is not a directory: %s", s.name, s.root)
	}
	return nil
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (s *FileSystemStore) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Create temp file in the same directory to ensure atomic rename works
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStore implements bugg.BlobStore interface
var _ bugg.BlobStore = (*FileSystemStore)(nil)
