package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFilesystemManager_ReadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	m := NewOSFilesystemManager()
	entries, err := m.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"a.mp3", "b.mp3", "sub"}
	if len(names) != len(want) {
		t.Fatalf("ReadDir() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOSFilesystemManager_ReadDir_missing(t *testing.T) {
	m := NewOSFilesystemManager()
	if _, err := m.ReadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ReadDir() expected error for missing directory")
	}
}

func TestOSFilesystemManager_Open(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rec.mp3")
	if err := os.WriteFile(path, []byte("audio bytes"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	m := NewOSFilesystemManager()

	t.Run("reads file content", func(t *testing.T) {
		f, err := m.Open(path)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != "audio bytes" {
			t.Errorf("content = %q, want %q", data, "audio bytes")
		}
	})

	t.Run("rejects directories", func(t *testing.T) {
		if _, err := m.Open(dir); err == nil {
			t.Error("Open() expected error for directory")
		}
	})

	t.Run("stat reports size", func(t *testing.T) {
		info, err := m.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Size() != int64(len("audio bytes")) {
			t.Errorf("Size() = %d, want %d", info.Size(), len("audio bytes"))
		}
	})
}
