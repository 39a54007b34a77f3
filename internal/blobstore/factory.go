package blobstore

import (
	"context"
	"fmt"

	"bugg-go/internal/bugg"
	"bugg-go/internal/config"
)

// NewStoreFromConfig creates a BlobStore implementation based on the store config type.
// credentialsFile is the SD card's config.json, used by the gcs backend.
func NewStoreFromConfig(ctx context.Context, cfg config.StoreConfig, credentialsFile string) (bugg.BlobStore, error) {
	switch cfg.Type {
	case "gcs", "":
		return NewGCSStore(credentialsFile), nil
	case "s3":
		s, err := NewS3Store(ctx, "s3", cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem store requires fs_root to be set")
		}
		s, err := NewFileSystemStore("filesystem", cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore("memory"), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
