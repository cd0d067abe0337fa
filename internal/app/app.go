// Package app wires the application together: one context struct owns
// the store, fetcher, favorites, catalog, and playback coordinator, and
// implements the operations the commands and the TUI call.
package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/radiotray/internal/catalog"
	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/config"
	"github.com/cristianoliveira/radiotray/internal/favorites"
	"github.com/cristianoliveira/radiotray/internal/fetcher"
	"github.com/cristianoliveira/radiotray/internal/player"
	"github.com/cristianoliveira/radiotray/internal/station"
	"github.com/cristianoliveira/radiotray/internal/store"
)

// StationSource is the directory service boundary the app depends on.
type StationSource interface {
	FetchMixed(ctx context.Context) ([]station.Station, error)
	Search(ctx context.Context, query string, limit int) ([]station.Station, error)
	FetchCountries(ctx context.Context) ([]string, error)
	HomeCountry() string
}

// App is the application context. It is constructed once at startup and
// passed into the commands; there are no ambient singletons. All state
// mutations happen on the caller's goroutine.
type App struct {
	Store     store.Store
	Source    StationSource
	Favorites *favorites.Manager
	Catalog   *catalog.Catalog

	settings    *store.Settings
	engine      player.Engine
	coordinator *player.Coordinator
}

// New builds an App from the global configuration: storage backend from
// config, directory fetcher from config, favorites and catalog on top.
func New() (*App, error) {
	s, err := store.NewFromConfig()
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return NewWith(s, fetcher.New(fetcher.Options{})), nil
}

// NewWith builds an App on explicit collaborators.
func NewWith(s store.Store, source StationSource) *App {
	fav := favorites.NewManager(s)
	return &App{
		Store:     s,
		Source:    source,
		Favorites: fav,
		Catalog:   catalog.New(source.HomeCountry(), fav),
		settings:  s.LoadSettings(),
	}
}

// Settings returns the effective settings loaded at startup.
func (a *App) Settings() *store.Settings {
	return a.settings
}

// AttachEngine creates the playback coordinator on the given engine,
// with the persisted volume. Commands that never play skip this.
func (a *App) AttachEngine(e player.Engine) *player.Coordinator {
	a.engine = e
	a.coordinator = player.NewCoordinator(e, a.settings.Volume)
	return a.coordinator
}

// Player returns the coordinator, or nil when no engine is attached.
func (a *App) Player() *player.Coordinator {
	return a.coordinator
}

// FetchStations loads the station collection without touching the
// catalog, so callers may run it off the goroutine that owns the
// catalog. The cache is used when still valid unless force is set; a
// failed or empty fetch falls back to whatever cache exists, even an
// expired one, and never overwrites it.
func (a *App) FetchStations(ctx context.Context, force bool) []station.Station {
	if !force && a.Store.IsCacheValid() {
		if cached := a.Store.LoadCache(); len(cached) > 0 {
			colors.Debug(fmt.Sprintf("using cached stations (%d)", len(cached)))
			return cached
		}
	}

	colors.Info("Loading stations...")
	stations, err := a.Source.FetchMixed(ctx)
	if err != nil {
		colors.Warning(fmt.Sprintf("could not fetch stations: %v", err))
	}

	if len(stations) == 0 {
		if cached := a.Store.LoadCache(); len(cached) > 0 {
			colors.Warning("No stations found, keeping previously cached list")
			return cached
		}
		colors.Warning("No stations found")
		return []station.Station{}
	}

	if err := a.Store.SaveCache(stations); err != nil {
		colors.Warning(fmt.Sprintf("could not cache stations: %v", err))
	}
	return stations
}

// ApplyStations installs a fetched collection into the catalog. Must
// run on the goroutine that owns the catalog.
func (a *App) ApplyStations(stations []station.Station) {
	a.Catalog.SetStations(stations)
}

// LoadStations fills the catalog: from the cache when it is still valid,
// otherwise from the directory service.
func (a *App) LoadStations(ctx context.Context) []station.Station {
	stations := a.FetchStations(ctx, false)
	a.ApplyStations(stations)
	return stations
}

// Refresh bypasses the cache and fetches a fresh mixed collection. The
// cache is overwritten only with a non-empty result.
func (a *App) Refresh(ctx context.Context) []station.Station {
	stations := a.FetchStations(ctx, true)
	a.ApplyStations(stations)
	return stations
}

// Play resolves a station by UUID or name against the catalog and starts
// playback. The selection and the last-station setting follow the
// station that actually plays.
func (a *App) Play(query string) error {
	if a.coordinator == nil {
		return fmt.Errorf("no audio engine attached")
	}
	st, ok := a.Catalog.Resolve(query)
	if !ok {
		return fmt.Errorf("no station matches %q", query)
	}
	return a.PlayStation(st)
}

// PlayStation starts playback of a concrete station.
func (a *App) PlayStation(st station.Station) error {
	if a.coordinator == nil {
		return fmt.Errorf("no audio engine attached")
	}
	if !st.IsPlayable() {
		return fmt.Errorf("station %q has no stream URL", st.Name)
	}

	a.coordinator.Play(st)
	a.Catalog.Select(st.StationUUID)

	a.settings.LastStationUUID = st.StationUUID
	if err := a.Store.SaveSettings(a.settings); err != nil {
		colors.Warning(fmt.Sprintf("could not save settings: %v", err))
	}
	return nil
}

// Stop stops playback, if any.
func (a *App) Stop() {
	if a.coordinator != nil {
		a.coordinator.Stop()
	}
}

// SetVolume adjusts and persists the playback volume.
func (a *App) SetVolume(volume float64) {
	a.settings.SetVolume(volume)
	if a.coordinator != nil {
		a.coordinator.SetVolume(a.settings.Volume)
	}
	if err := a.Store.SaveSettings(a.settings); err != nil {
		colors.Warning(fmt.Sprintf("could not save settings: %v", err))
	}
}

// Close releases the engine and the store.
func (a *App) Close() error {
	if a.engine != nil {
		if err := a.engine.Close(); err != nil {
			colors.Warning(fmt.Sprintf("could not close audio engine: %v", err))
		}
	}
	return a.Store.Close()
}

// SearchLimit returns the configured remote search page size.
func SearchLimit() int {
	return config.GetInt("search_limit", 100)
}
