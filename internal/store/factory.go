package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/config"
)

const (
	// BackendJSON selects the JSON file store (the default).
	BackendJSON = "json"
	// BackendSQLite selects the SQLite-backed store.
	BackendSQLite = "sqlite"

	dbFileName = "radiotray.db"
)

// NewFromConfig creates a store backend based on configuration. An unknown
// backend, or a SQLite backend that fails to open, falls back to JSON with
// a warning.
func NewFromConfig() (Store, error) {
	stateDir, err := config.StateDir()
	if err != nil {
		return nil, err
	}
	backend := config.Get("storage_backend", BackendJSON)
	return NewForBackend(backend, stateDir)
}

// NewForBackend creates a store for the provided backend name and state dir.
func NewForBackend(backend, stateDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewJSONStore(stateDir)
	case BackendSQLite:
		s, err := NewSQLiteStore(filepath.Join(stateDir, dbFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to json: %v", err))
			return NewJSONStore(stateDir)
		}
		return s, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to json", backend))
		return NewJSONStore(stateDir)
	}
}
