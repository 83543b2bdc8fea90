package mocks

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/user/snaphero/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Writes create their parent
// directories like the real adapter, and every write is recorded in order.
// Set a *Func field to inject a failure or custom behaviour.
type FileSystem struct {
	mu     sync.RWMutex
	files  map[string][]byte
	dirs   map[string]bool
	writes []string

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	SizeFunc      func(path string) (int64, error)
	RemoveFunc    func(path string) error
}

// NewFileSystem returns an empty in-memory filesystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Seed stores a file without recording it as a write.
func (m *FileSystem) Seed(path string, data []byte) *FileSystem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = data
	return m
}

func notExist(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, notExist("open", path)
	}
	return data, nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	path = filepath.Clean(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	for dir := filepath.Dir(path); dir != "." && dir != "/" && !m.dirs[dir]; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
	m.files[path] = append([]byte(nil), data...)
	m.writes = append(m.writes, path)
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	path = filepath.Clean(path)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

func (m *FileSystem) Size(path string) (int64, error) {
	if m.SizeFunc != nil {
		return m.SizeFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return 0, notExist("stat", path)
	}
	return int64(len(data)), nil
}

func (m *FileSystem) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	path = filepath.Clean(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; !ok && !m.dirs[path] {
		return notExist("remove", path)
	}
	delete(m.files, path)
	delete(m.dirs, path)
	return nil
}

// GetFile returns the contents of a file.
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// GetAllFiles returns a copy of every stored file keyed by path.
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		result[k] = v
	}
	return result
}

// Writes returns the written paths in write order.
func (m *FileSystem) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.writes...)
}

// Paths returns every stored file path, sorted.
func (m *FileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// String lists stored paths; handy in test failure messages.
func (m *FileSystem) String() string {
	return fmt.Sprint(m.Paths())
}

var _ ports.FileSystem = (*FileSystem)(nil)
