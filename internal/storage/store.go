// Package storage persists the game's serialized state.
//
// Every backend stores a single opaque blob under a key; the game decides
// what the blob means.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Store is a load/save interface to one opaque blob.
type Store interface {
	// Load returns the saved blob; ok is false when nothing was saved.
	Load() (blob string, ok bool, err error)
	Save(blob string) error
	Clear() error
}

// Backend names a storage implementation.
type Backend string

const (
	BackendMemory  Backend = "memory"
	BackendFile    Backend = "file"
	BackendSQLite  Backend = "sqlite"
	BackendBrowser Backend = "browser"
)

// ErrUnsupportedBackend is returned when a backend is unknown or not
// available on this platform.
var ErrUnsupportedBackend = errors.New("unsupported storage backend")

// Options select and locate a backend.
type Options struct {
	Backend Backend
	Path    string // file or database path
	Key     string // save slot name
}

// OrDefault normalizes b, substituting the platform default when empty.
func (b Backend) OrDefault() Backend {
	norm := Backend(strings.ToLower(strings.TrimSpace(string(b))))
	if norm == "" {
		return DefaultBackend
	}
	return norm
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	backend := opts.Backend.OrDefault()
	if backend == BackendMemory {
		return NewMemoryStore(), nil
	}
	store, err := openPlatform(backend, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return store, nil
}
