package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidKey is returned for keys that cannot name a file.
var ErrInvalidKey = errors.New("invalid store key")

// File keeps one file per key in a directory. Every Get reads the file, so
// a value written by another process is visible on the next read; the last
// writer wins.
type File struct {
	dir string
	log *zap.Logger
}

// NewFile returns a File store rooted at dir. The directory is created on
// first write.
func NewFile(dir string, log *zap.Logger) *File {
	if log == nil {
		log = zap.NewNop()
	}
	return &File{dir: dir, log: log}
}

// Path returns the file that holds key.
func (f *File) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", ErrInvalidKey
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get returns the contents of the key's file. A missing or unreadable file
// reports ok == false.
func (f *File) Get(key string) (string, bool) {
	path, err := f.Path(key)
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn("reading store file", zap.String("path", path), zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// Set replaces the key's file atomically.
func (f *File) Set(key, value string) error {
	path, err := f.Path(key)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	return writeAtomic(path, []byte(value))
}
