// internal/localstore/storage.go
//
// Local key-value storage for the client: the desktop counterpart of a
// browser's localStorage. Values are strings keyed by strings.
//
// Implementations:
//   - Memory: process-local map (tests, ephemeral clients).
//   - File:   one JSON object on disk, rewritten on every SetItem.
//
// Individual GetItem/SetItem calls are atomic; sequences of calls are not.

package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the localStorage-like capability set the fallback needs.
type Storage interface {
	// GetItem returns the value for key and whether it was present.
	GetItem(key string) (string, bool, error)
	// SetItem stores value under key.
	SetItem(key, value string) error
}

// Memory is an in-process Storage.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory returns an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// File persists all items as a single JSON object at Path.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a File storage rooted at path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *File) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *File) read() (map[string]string, error) {
	items := make(map[string]string)
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return items, nil
}

func (f *File) write(items map[string]string) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path)
}
