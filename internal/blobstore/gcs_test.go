package blobstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestGCSStore_ValidateSetup_missingCredentials(t *testing.T) {
	s := NewGCSStore(filepath.Join(t.TempDir(), "config.json"))
	defer s.Close()

	err := s.ValidateSetup(context.Background())
	if err == nil {
		t.Fatal("ValidateSetup() expected error for missing credentials file")
	}
	if !strings.Contains(err.Error(), "config.json") {
		t.Errorf("error = %v, want it to name the credentials file", err)
	}
}

func TestGCSStore_Close_withoutClient(t *testing.T) {
	s := NewGCSStore("/sd/config.json")
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
