package store

import "github.com/cristianoliveira/radiotray/internal/station"

// Store defines the persistence operations for settings, favorites, and the
// station cache. Load methods never fail: missing or corrupt state degrades
// to defaults or an empty result, with a warning on the console/log.
type Store interface {
	// LoadSettings returns the persisted settings merged over defaults.
	LoadSettings() *Settings
	// SaveSettings writes the full settings document.
	SaveSettings(settings *Settings) error
	// LoadFavorites returns the persisted favorites, empty if absent.
	LoadFavorites() []station.Station
	// SaveFavorites replaces the persisted favorites wholesale.
	SaveFavorites(stations []station.Station) error
	// LoadCache returns the stations from the last saved cache entry.
	LoadCache() []station.Station
	// SaveCache wraps the stations with the current timestamp and persists.
	SaveCache(stations []station.Station) error
	// IsCacheValid reports whether a cache entry exists and has not expired.
	IsCacheValid() bool
	// Close releases any resources held by the backend.
	Close() error
}
