// Package catalog holds the session's station collection and view state,
// and derives the grouped display list from them.
package catalog

import (
	"strings"

	"github.com/cristianoliveira/radiotray/internal/station"
)

// ViewMode selects which source collection the display derives from.
type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewFavorites ViewMode = "favorites"
)

// IsValid checks if the view mode is valid.
func (v ViewMode) IsValid() bool {
	switch v {
	case ViewAll, ViewFavorites:
		return true
	default:
		return false
	}
}

// String returns the string representation of the view mode.
func (v ViewMode) String() string {
	return string(v)
}

// FavoritesSource supplies the favorites snapshot for the favorites view.
type FavoritesSource interface {
	All() []station.Station
}

// Catalog exclusively owns the full station collection for a session plus
// the current view selection. It is confined to one goroutine.
type Catalog struct {
	stations    []station.Station
	favorites   FavoritesSource
	homeCountry string

	viewMode ViewMode
	filter   string
	selected string // stationuuid, empty when nothing is selected
}

// New creates a Catalog with the view state reset to all/empty/none.
func New(homeCountry string, favorites FavoritesSource) *Catalog {
	return &Catalog{
		favorites:   favorites,
		homeCountry: homeCountry,
		viewMode:    ViewAll,
	}
}

// SetStations replaces the full station collection. On the first
// successful load, the first station of the first group of the current
// view is selected automatically.
func (c *Catalog) SetStations(stations []station.Station) {
	c.stations = stations
	c.ensureSelection()
}

// Stations returns the full collection as a read-only view; callers must
// not mutate it.
func (c *Catalog) Stations() []station.Station {
	return c.stations
}

// ViewMode returns the current view mode.
func (c *Catalog) ViewMode() ViewMode {
	return c.viewMode
}

// SetViewMode switches the view, resetting the filter text. Invalid modes
// are ignored.
func (c *Catalog) SetViewMode(mode ViewMode) {
	if !mode.IsValid() || mode == c.viewMode {
		return
	}
	c.viewMode = mode
	c.filter = ""
}

// FilterText returns the current filter text.
func (c *Catalog) FilterText() string {
	return c.filter
}

// SetFilter updates the filter text used to derive the display list.
func (c *Catalog) SetFilter(text string) {
	c.filter = text
}

// source returns the station sequence the current view derives from.
func (c *Catalog) source() []station.Station {
	if c.viewMode == ViewFavorites {
		return c.favorites.All()
	}
	return c.stations
}

// Groups derives the grouped display list from the current view mode and
// filter text: matching stations grouped by country, home country first.
func (c *Catalog) Groups() []station.Group {
	return station.GroupByCountry(station.Filter(c.source(), c.filter), c.homeCountry)
}

// DisplayList returns the stations of the current view in display order.
func (c *Catalog) DisplayList() []station.Station {
	return station.Flatten(c.Groups())
}

// SelectedUUID returns the UUID of the selected station, or empty.
func (c *Catalog) SelectedUUID() string {
	return c.selected
}

// Selected returns the selected station from the full collection.
func (c *Catalog) Selected() (station.Station, bool) {
	return c.Lookup(c.selected)
}

// Select marks the station with the given UUID as selected. The catalog
// references the station by UUID; it does not own a copy.
func (c *Catalog) Select(uuid string) {
	c.selected = uuid
}

// Lookup finds a station by UUID across the full collection and the
// favorites set.
func (c *Catalog) Lookup(uuid string) (station.Station, bool) {
	if uuid == "" {
		return station.Station{}, false
	}
	for _, s := range c.stations {
		if s.StationUUID == uuid {
			return s, true
		}
	}
	for _, s := range c.favorites.All() {
		if s.StationUUID == uuid {
			return s, true
		}
	}
	return station.Station{}, false
}

// Resolve finds a station by UUID first, then by case-insensitive name
// match over the current display order.
func (c *Catalog) Resolve(query string) (station.Station, bool) {
	if s, ok := c.Lookup(query); ok {
		return s, true
	}
	needle := strings.ToLower(query)
	for _, s := range c.DisplayList() {
		if strings.ToLower(s.Name) == needle {
			return s, true
		}
	}
	for _, s := range c.DisplayList() {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return s, true
		}
	}
	return station.Station{}, false
}

// ensureSelection applies the startup selection policy.
func (c *Catalog) ensureSelection() {
	if c.selected != "" {
		return
	}
	groups := c.Groups()
	if len(groups) == 0 || len(groups[0].Stations) == 0 {
		return
	}
	c.selected = groups[0].Stations[0].StationUUID
}
