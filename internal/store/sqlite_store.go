package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/station"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS favorites (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	uuid TEXT NOT NULL UNIQUE,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS station_cache (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	timestamp INTEGER NOT NULL,
	stations  TEXT NOT NULL
);
`

// SQLiteStore implements the Store interface using a single SQLite
// database in the state directory. Stations are stored as JSON documents so
// the full canonical shape round-trips.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a SQLite-backed store at the provided path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite store: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open db: %w", err)
	}
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadSettings returns the persisted settings merged over defaults.
func (s *SQLiteStore) LoadSettings() *Settings {
	settings := DefaultSettings()
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		colors.Warning(fmt.Sprintf("could not load settings: %v", err))
		return settings
	}
	defer rows.Close()

	doc := make(map[string]any)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			colors.Warning(fmt.Sprintf("could not read setting row: %v", err))
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			colors.Warning(fmt.Sprintf("could not parse setting %s: %v", key, err))
			continue
		}
		doc[key] = decoded
	}
	if err := rows.Err(); err != nil {
		colors.Warning(fmt.Sprintf("could not load settings: %v", err))
	}
	settings.Merge(doc)
	return settings
}

// SaveSettings writes the full settings document.
func (s *SQLiteStore) SaveSettings(settings *Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("sqlite store: marshal settings: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("sqlite store: flatten settings: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite store: begin settings write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM settings"); err != nil {
		return fmt.Errorf("sqlite store: clear settings: %w", err)
	}
	for key, value := range doc {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("sqlite store: encode setting %s: %w", key, err)
		}
		if _, err := tx.Exec("INSERT INTO settings (key, value) VALUES (?, ?)", key, string(encoded)); err != nil {
			return fmt.Errorf("sqlite store: write setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// LoadFavorites returns the persisted favorites in insertion order.
func (s *SQLiteStore) LoadFavorites() []station.Station {
	rows, err := s.db.Query("SELECT data FROM favorites ORDER BY seq")
	if err != nil {
		colors.Warning(fmt.Sprintf("could not load favorites: %v", err))
		return []station.Station{}
	}
	defer rows.Close()

	favorites := []station.Station{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			colors.Warning(fmt.Sprintf("could not read favorite row: %v", err))
			continue
		}
		var st station.Station
		if err := json.Unmarshal([]byte(data), &st); err != nil {
			colors.Warning(fmt.Sprintf("could not parse favorite: %v", err))
			continue
		}
		favorites = append(favorites, st)
	}
	if err := rows.Err(); err != nil {
		colors.Warning(fmt.Sprintf("could not load favorites: %v", err))
	}
	return favorites
}

// SaveFavorites replaces the persisted favorites wholesale.
func (s *SQLiteStore) SaveFavorites(stations []station.Station) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite store: begin favorites write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM favorites"); err != nil {
		return fmt.Errorf("sqlite store: clear favorites: %w", err)
	}
	for _, st := range stations {
		data, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("sqlite store: encode favorite %s: %w", st.StationUUID, err)
		}
		if _, err := tx.Exec("INSERT INTO favorites (uuid, data) VALUES (?, ?)", st.StationUUID, string(data)); err != nil {
			return fmt.Errorf("sqlite store: write favorite %s: %w", st.StationUUID, err)
		}
	}
	return tx.Commit()
}

// LoadCache returns the stations from the last saved cache entry.
func (s *SQLiteStore) LoadCache() []station.Station {
	var data string
	err := s.db.QueryRow("SELECT stations FROM station_cache WHERE id = 1").Scan(&data)
	if err != nil {
		if err != sql.ErrNoRows {
			colors.Warning(fmt.Sprintf("could not load cache: %v", err))
		}
		return []station.Station{}
	}
	var stations []station.Station
	if err := json.Unmarshal([]byte(data), &stations); err != nil {
		colors.Warning(fmt.Sprintf("could not parse cache: %v", err))
		return []station.Station{}
	}
	if stations == nil {
		return []station.Station{}
	}
	return stations
}

// SaveCache wraps the stations with the current timestamp and persists.
func (s *SQLiteStore) SaveCache(stations []station.Station) error {
	if stations == nil {
		stations = []station.Station{}
	}
	data, err := json.Marshal(stations)
	if err != nil {
		return fmt.Errorf("sqlite store: encode cache: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO station_cache (id, timestamp, stations) VALUES (1, ?, ?) ON CONFLICT (id) DO UPDATE SET timestamp = excluded.timestamp, stations = excluded.stations",
		s.now().Unix(), string(data),
	)
	if err != nil {
		return fmt.Errorf("sqlite store: write cache: %w", err)
	}
	return nil
}

// IsCacheValid reports whether a cache entry exists and has not expired.
func (s *SQLiteStore) IsCacheValid() bool {
	var ts int64
	if err := s.db.QueryRow("SELECT timestamp FROM station_cache WHERE id = 1").Scan(&ts); err != nil {
		return false
	}
	expiry := time.Duration(s.LoadSettings().CacheExpiryHours * float64(time.Hour))
	age := s.now().Sub(time.Unix(ts, 0))
	return age < expiry
}
