package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/station"
)

// State file names inside the state directory.
const (
	settingsFileName  = "settings.json"
	favoritesFileName = "favorites.json"
	cacheFileName     = "stations_cache.json"
)

// cacheEntry is the persisted cache document: a station snapshot plus its
// creation time as unix seconds.
type cacheEntry struct {
	Timestamp int64             `json:"timestamp"`
	Stations  []station.Station `json:"stations"`
}

// JSONStore persists settings, favorites, and the cache as three
// independent human-readable JSON documents.
type JSONStore struct {
	dir string
	now func() time.Time
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a JSON store rooted at dir, creating it if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &JSONStore{dir: dir, now: time.Now}, nil
}

// LoadSettings reads settings from disk, merging persisted values over
// defaults key by key. Missing or corrupt files yield defaults.
func (js *JSONStore) LoadSettings() *Settings {
	settings := DefaultSettings()
	path := filepath.Join(js.dir, settingsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			colors.Warning(fmt.Sprintf("could not load settings: %v", err))
		}
		return settings
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		colors.Warning(fmt.Sprintf("could not parse settings: %v", err))
		return settings
	}
	settings.Merge(doc)
	return settings
}

// SaveSettings writes the full settings document.
func (js *JSONStore) SaveSettings(settings *Settings) error {
	return js.writeJSON(settingsFileName, settings)
}

// LoadFavorites returns the persisted favorites, empty if absent or unreadable.
func (js *JSONStore) LoadFavorites() []station.Station {
	var favorites []station.Station
	if !js.readJSON(favoritesFileName, &favorites) {
		return []station.Station{}
	}
	if favorites == nil {
		favorites = []station.Station{}
	}
	return favorites
}

// SaveFavorites overwrites the persisted favorites file.
func (js *JSONStore) SaveFavorites(stations []station.Station) error {
	if stations == nil {
		stations = []station.Station{}
	}
	return js.writeJSON(favoritesFileName, stations)
}

// LoadCache returns the station collection from the last saved cache entry.
func (js *JSONStore) LoadCache() []station.Station {
	var entry cacheEntry
	if !js.readJSON(cacheFileName, &entry) {
		return []station.Station{}
	}
	if entry.Stations == nil {
		return []station.Station{}
	}
	return entry.Stations
}

// SaveCache wraps the stations with the current timestamp and persists.
func (js *JSONStore) SaveCache(stations []station.Station) error {
	if stations == nil {
		stations = []station.Station{}
	}
	return js.writeJSON(cacheFileName, cacheEntry{
		Timestamp: js.now().Unix(),
		Stations:  stations,
	})
}

// IsCacheValid reports whether the cache entry is younger than the
// configured expiry. Any read error counts as invalid.
func (js *JSONStore) IsCacheValid() bool {
	path := filepath.Join(js.dir, cacheFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false
	}
	expiry := time.Duration(js.LoadSettings().CacheExpiryHours * float64(time.Hour))
	age := js.now().Sub(time.Unix(entry.Timestamp, 0))
	return age < expiry
}

// Close is a no-op for the JSON backend.
func (js *JSONStore) Close() error { return nil }

// readJSON loads one state file into out. Returns false when the file is
// absent or unreadable; parse failures are warned about.
func (js *JSONStore) readJSON(name string, out any) bool {
	path := filepath.Join(js.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			colors.Warning(fmt.Sprintf("could not read %s: %v", name, err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		colors.Warning(fmt.Sprintf("could not parse %s: %v", name, err))
		return false
	}
	return true
}

// writeJSON atomically replaces one state file with the indented JSON
// rendering of v. Non-ASCII content is written unescaped.
func (js *JSONStore) writeJSON(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(js.dir, name)
	tmp, err := os.CreateTemp(js.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
