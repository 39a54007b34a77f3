package blobstore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMemoryStore_UploadObject(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		data    string
		size    int64
		wantErr bool
	}{
		{
			name: "store object successfully",
			key:  "proj_p/bugg_A/conf_c/2022-02-22T17_37_45.631Z.mp3",
			data: "mp3 bytes",
			size: 9,
		},
		{
			name:    "size mismatch",
			key:     "proj_p/bugg_A/conf_c/x.mp3",
			data:    "short",
			size:    100,
			wantErr: true,
		},
		{
			name: "empty object",
			key:  "proj_p/bugg_A/conf_c/empty.mp3",
			data: "",
			size: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore("test")

			info, err := s.UploadObject(context.Background(), "bucket", tt.key, strings.NewReader(tt.data), tt.size, "audio/mpeg")
			if (err != nil) != tt.wantErr {
				t.Fatalf("UploadObject() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if info.Key != tt.key || info.Bucket != "bucket" || info.Size != tt.size {
				t.Errorf("UploadObject() info = %+v", info)
			}

			obj, ok := s.Get("bucket", tt.key)
			if !ok {
				t.Fatal("Get() object not found")
			}
			if string(obj.Data) != tt.data {
				t.Errorf("Data = %q, want %q", obj.Data, tt.data)
			}
			if obj.ContentType != "audio/mpeg" {
				t.Errorf("ContentType = %q, want %q", obj.ContentType, "audio/mpeg")
			}
		})
	}
}

func TestMemoryStore_UploadObject_Exists(t *testing.T) {
	s := NewMemoryStore("test")
	ctx := context.Background()

	if _, err := s.UploadObject(ctx, "bucket", "k.mp3", strings.NewReader("v1"), 2, "audio/mpeg"); err != nil {
		t.Fatalf("first UploadObject() error = %v", err)
	}

	_, err := s.UploadObject(ctx, "bucket", "k.mp3", strings.NewReader("v2"), 2, "audio/mpeg")
	if !errors.Is(err, ErrObjectExists) {
		t.Fatalf("second UploadObject() error = %v, want ErrObjectExists", err)
	}
	if !strings.Contains(err.Error(), "bucket/k.mp3 in test") {
		t.Errorf("error = %q, want it to name the key and the store", err)
	}

	obj, _ := s.Get("bucket", "k.mp3")
	if string(obj.Data) != "v1" {
		t.Errorf("Data = %q, want %q (not overwritten)", obj.Data, "v1")
	}

	// Same key in another bucket is a different object.
	if _, err := s.UploadObject(ctx, "other", "k.mp3", strings.NewReader("v3"), 2, "audio/mpeg"); err != nil {
		t.Errorf("UploadObject() to other bucket error = %v", err)
	}
}

func TestMemoryStore_Keys(t *testing.T) {
	s := NewMemoryStore("test")
	ctx := context.Background()

	for _, k := range []string{"b.mp3", "a.mp3", "c.mp3"} {
		if _, err := s.UploadObject(ctx, "bucket", k, strings.NewReader("x"), 1, "audio/mpeg"); err != nil {
			t.Fatalf("UploadObject(%s) error = %v", k, err)
		}
	}

	want := []string{"bucket/b.mp3", "bucket/a.mp3", "bucket/c.mp3"}
	got := s.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore("test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.UploadObject(ctx, "bucket", "k.mp3", strings.NewReader("x"), 1, "audio/mpeg"); !errors.Is(err, context.Canceled) {
		t.Errorf("UploadObject() error = %v, want context.Canceled", err)
	}
}
