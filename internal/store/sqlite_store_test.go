package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "radiotray.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSettingsRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	settings := DefaultSettings()
	settings.SetVolume(0.25)
	settings.LastStationUUID = "u1"
	require.NoError(t, s.SaveSettings(settings))

	loaded := s.LoadSettings()
	assert.Equal(t, 0.25, loaded.Volume)
	assert.Equal(t, "u1", loaded.LastStationUUID)
	assert.Equal(t, 24.0, loaded.CacheExpiryHours)
}

func TestSQLiteSettingsDefaultsWhenEmpty(t *testing.T) {
	s := newTestSQLiteStore(t)
	loaded := s.LoadSettings()
	assert.Equal(t, 0.8, loaded.Volume)
}

func TestSQLiteFavoritesRoundTripPreservesOrder(t *testing.T) {
	s := newTestSQLiteStore(t)
	want := sampleStations()
	require.NoError(t, s.SaveFavorites(want))
	assert.Equal(t, want, s.LoadFavorites())

	// Full-replace semantics: saving a shorter list drops the rest.
	require.NoError(t, s.SaveFavorites(want[1:]))
	got := s.LoadFavorites()
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].StationUUID)
}

func TestSQLiteCacheRoundTripAndValidity(t *testing.T) {
	base := time.Now()
	s := newTestSQLiteStore(t)
	s.now = func() time.Time { return base }

	assert.False(t, s.IsCacheValid())
	require.NoError(t, s.SaveCache(sampleStations()))
	assert.Equal(t, sampleStations(), s.LoadCache())
	assert.True(t, s.IsCacheValid())

	s.now = func() time.Time { return base.Add(25 * time.Hour) }
	assert.False(t, s.IsCacheValid())
}

func TestSQLiteLoadCacheEmpty(t *testing.T) {
	s := newTestSQLiteStore(t)
	got := s.LoadCache()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
