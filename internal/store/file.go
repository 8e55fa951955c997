// internal/store/file.go
//
// JSON file implementation of the Store interface (the default backend).
// The whole document lives in one file, e.g. ./data/leaderboard.json:
//
//	{
//	  "scores": [ {"id":1,"nickname":"Al","score":42,"date":"..."} ],
//	  "settings": { "lastReset": "Wed Oct 14 2026" }
//	}
//
// Saves write a temp file in the same directory and rename it over the
// target, so a crash never leaves a half-written document.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/robalobadob/associa/internal/leaderboard"
)

// File stores the document as indented JSON at Path.
type File struct {
	path string
	mu   sync.Mutex // serializes writers within this process
}

// NewFileStore returns a File store for path. The file and its parent
// directory are created on first Save.
func NewFileStore(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Load reads and decodes the document; a missing file is leaderboard.ErrNotFound.
func (f *File) Load(ctx context.Context) (*leaderboard.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, leaderboard.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var d leaderboard.Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return &d, nil
}

// Save atomically replaces the file with d.
func (f *File) Save(ctx context.Context, d *leaderboard.Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".leaderboard-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename to %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
