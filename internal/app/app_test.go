package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/radiotray/internal/player"
	"github.com/cristianoliveira/radiotray/internal/station"
	"github.com/cristianoliveira/radiotray/internal/store"
)

type fakeSource struct {
	stations []station.Station
	err      error
	calls    int
}

func (f *fakeSource) FetchMixed(context.Context) ([]station.Station, error) {
	f.calls++
	return f.stations, f.err
}

func (f *fakeSource) Search(context.Context, string, int) ([]station.Station, error) {
	return f.stations, f.err
}

func (f *fakeSource) FetchCountries(context.Context) ([]string, error) { return nil, f.err }

func (f *fakeSource) HomeCountry() string { return "The Netherlands" }

type fakeStore struct {
	settings       *store.Settings
	favorites      []station.Station
	cache          []station.Station
	cacheValid     bool
	saveCacheCalls int
	savedSettings  int
}

func (f *fakeStore) LoadSettings() *store.Settings {
	if f.settings == nil {
		f.settings = store.DefaultSettings()
	}
	return f.settings
}

func (f *fakeStore) SaveSettings(s *store.Settings) error {
	f.settings = s
	f.savedSettings++
	return nil
}

func (f *fakeStore) LoadFavorites() []station.Station           { return f.favorites }
func (f *fakeStore) SaveFavorites(st []station.Station) error   { f.favorites = st; return nil }
func (f *fakeStore) LoadCache() []station.Station               { return f.cache }
func (f *fakeStore) SaveCache(st []station.Station) error {
	f.saveCacheCalls++
	f.cache = st
	return nil
}
func (f *fakeStore) IsCacheValid() bool { return f.cacheValid }
func (f *fakeStore) Close() error       { return nil }

// fakeEngine satisfies the player engine boundary without audio.
type fakeEngine struct {
	notif    chan player.Notification
	playURLs []string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{notif: make(chan player.Notification)}
}

func (f *fakeEngine) Play(url string, _ float64) error {
	f.playURLs = append(f.playURLs, url)
	return nil
}
func (f *fakeEngine) SetVolume(float64)                          {}
func (f *fakeEngine) Stop()                                      {}
func (f *fakeEngine) Notifications() <-chan player.Notification  { return f.notif }
func (f *fakeEngine) Close() error                               { close(f.notif); return nil }

func st(uuid, name, country string) station.Station {
	return station.Station{StationUUID: uuid, Name: name, Country: country, URL: "http://" + uuid}
}

func TestLoadStationsUsesValidCache(t *testing.T) {
	fs := &fakeStore{cache: []station.Station{st("u1", "One", "Germany")}, cacheValid: true}
	src := &fakeSource{}
	a := NewWith(fs, src)

	got := a.LoadStations(context.Background())

	require.Len(t, got, 1)
	assert.Zero(t, src.calls)
	assert.Equal(t, "u1", a.Catalog.SelectedUUID())
}

func TestLoadStationsFetchesWhenCacheExpired(t *testing.T) {
	fs := &fakeStore{cache: []station.Station{st("old", "Old", "Germany")}, cacheValid: false}
	src := &fakeSource{stations: []station.Station{st("u1", "One", "Germany")}}
	a := NewWith(fs, src)

	got := a.LoadStations(context.Background())

	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].StationUUID)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 1, fs.saveCacheCalls)
	assert.Equal(t, "u1", fs.cache[0].StationUUID)
}

func TestFailedFetchKeepsPriorCache(t *testing.T) {
	fs := &fakeStore{cache: []station.Station{st("old", "Old", "Germany")}, cacheValid: false}
	src := &fakeSource{err: errors.New("timeout")}
	a := NewWith(fs, src)

	got := a.LoadStations(context.Background())

	// Degrades to the expired cache and never overwrites it.
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].StationUUID)
	assert.Zero(t, fs.saveCacheCalls)
}

func TestFailedFetchWithoutCacheDegradesToEmpty(t *testing.T) {
	fs := &fakeStore{}
	src := &fakeSource{err: errors.New("timeout")}
	a := NewWith(fs, src)

	got := a.LoadStations(context.Background())

	assert.Empty(t, got)
	assert.Empty(t, a.Catalog.DisplayList())
	assert.Zero(t, fs.saveCacheCalls)
}

func TestEmptyFetchDoesNotOverwriteCache(t *testing.T) {
	fs := &fakeStore{cache: []station.Station{st("old", "Old", "Germany")}, cacheValid: true}
	src := &fakeSource{stations: []station.Station{}}
	a := NewWith(fs, src)

	a.Refresh(context.Background())

	assert.Zero(t, fs.saveCacheCalls)
	assert.Equal(t, "old", fs.cache[0].StationUUID)
}

func TestFetchStationsDoesNotTouchCatalog(t *testing.T) {
	fs := &fakeStore{}
	src := &fakeSource{stations: []station.Station{st("u1", "One", "Germany")}}
	a := NewWith(fs, src)

	got := a.FetchStations(context.Background(), false)

	// The fetch step is catalog-free so it can run off the goroutine
	// that owns the catalog; ApplyStations installs the result.
	require.Len(t, got, 1)
	assert.Empty(t, a.Catalog.DisplayList())
	assert.Empty(t, a.Catalog.SelectedUUID())

	a.ApplyStations(got)
	assert.Len(t, a.Catalog.DisplayList(), 1)
	assert.Equal(t, "u1", a.Catalog.SelectedUUID())
}

func TestRefreshBypassesValidCache(t *testing.T) {
	fs := &fakeStore{cache: []station.Station{st("old", "Old", "Germany")}, cacheValid: true}
	src := &fakeSource{stations: []station.Station{st("u1", "One", "Germany")}}
	a := NewWith(fs, src)

	got := a.Refresh(context.Background())

	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].StationUUID)
	assert.Equal(t, 1, fs.saveCacheCalls)
}

func TestPlayResolvesAndPersistsLastStation(t *testing.T) {
	fs := &fakeStore{}
	a := NewWith(fs, &fakeSource{})
	a.Catalog.SetStations([]station.Station{st("u1", "Radio One", "Germany")})
	eng := newFakeEngine()
	a.AttachEngine(eng)

	require.NoError(t, a.Play("radio one"))

	assert.Equal(t, []string{"http://u1"}, eng.playURLs)
	assert.Equal(t, "u1", a.Catalog.SelectedUUID())
	assert.Equal(t, "u1", fs.settings.LastStationUUID)
	assert.Equal(t, 1, fs.savedSettings)
}

func TestPlayUnknownStation(t *testing.T) {
	a := NewWith(&fakeStore{}, &fakeSource{})
	a.AttachEngine(newFakeEngine())

	assert.Error(t, a.Play("does not exist"))
}

func TestPlayWithoutEngine(t *testing.T) {
	a := NewWith(&fakeStore{}, &fakeSource{})
	a.Catalog.SetStations([]station.Station{st("u1", "One", "Germany")})

	assert.Error(t, a.Play("u1"))
}

func TestPlayStationRejectsMissingURL(t *testing.T) {
	a := NewWith(&fakeStore{}, &fakeSource{})
	a.AttachEngine(newFakeEngine())

	err := a.PlayStation(station.Station{StationUUID: "u1", Name: "broken"})
	assert.Error(t, err)
}

func TestSetVolumeClampsAndPersists(t *testing.T) {
	fs := &fakeStore{}
	a := NewWith(fs, &fakeSource{})
	a.AttachEngine(newFakeEngine())

	a.SetVolume(1.5)

	assert.Equal(t, 1.0, a.Settings().Volume)
	assert.Equal(t, 1.0, a.Player().Volume())
	assert.Equal(t, 1, fs.savedSettings)
}
