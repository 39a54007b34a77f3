package testutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing/fstest"

	"bugg-go/internal/bugg"
)

// MockFilesystemManager is an in-memory filesystem for testing.
// Paths are absolute slash paths such as "/sd/audio". Parent directories
// of added files are implied. Directory listings are sorted by name.
type MockFilesystemManager struct {
	mu     sync.Mutex
	files  fstest.MapFS
	open   int
	opened int
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{files: fstest.MapFS{}}
}

// mapPath converts an absolute path to an fs.FS name.
func mapPath(path string) string {
	p := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	if p == "" {
		return "."
	}
	return p
}

// AddFile adds a file to the mock filesystem.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[mapPath(path)] = &fstest.MapFile{Data: content, Mode: 0644}
}

// AddDirectory adds an empty directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[mapPath(path)] = &fstest.MapFile{Mode: fs.ModeDir | 0755}
}

func (m *MockFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fs.Stat(m.files, mapPath(path))
}

func (m *MockFilesystemManager) ReadDir(path string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fs.ReadDir(m.files, mapPath(path))
}

func (m *MockFilesystemManager) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fs.ReadFile(m.files, mapPath(path))
}

func (m *MockFilesystemManager) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[mapPath(path)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if f.Mode.IsDir() {
		return nil, fmt.Errorf("cannot open directory: %s", path)
	}
	m.open++
	m.opened++
	return &mockFile{Reader: bytes.NewReader(f.Data), fsmgr: m}, nil
}

// OpenFiles returns the number of files opened and not yet closed.
func (m *MockFilesystemManager) OpenFiles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// OpenCount returns the number of Open calls that succeeded.
func (m *MockFilesystemManager) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

type mockFile struct {
	*bytes.Reader
	fsmgr  *MockFilesystemManager
	closed bool
}

func (f *mockFile) Close() error {
	if f.closed {
		return fmt.Errorf("file already closed")
	}
	f.closed = true
	f.fsmgr.mu.Lock()
	f.fsmgr.open--
	f.fsmgr.mu.Unlock()
	return nil
}

// Compile-time check
var _ bugg.FilesystemManager = (*MockFilesystemManager)(nil)
