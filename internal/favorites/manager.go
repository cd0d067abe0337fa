// Package favorites maintains the user's persisted set of favorite stations.
package favorites

import (
	"fmt"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/station"
	"github.com/cristianoliveira/radiotray/internal/store"
)

// Manager owns the mutable favorites collection. It is the sole writer to
// the persisted favorites form. Entries are unique by StationUUID and keep
// insertion order. Every mutation persists synchronously; a persistence
// failure is reported but the in-memory mutation stands, favoring
// in-session consistency over strict durability.
//
// Manager is not safe for concurrent use; per the application's threading
// model all mutations happen on one goroutine.
type Manager struct {
	store store.Store
	items []station.Station
	index map[string]int // uuid -> position in items
}

// NewManager creates a Manager backed by the given store and loads the
// persisted favorites.
func NewManager(s store.Store) *Manager {
	m := &Manager{
		store: s,
		index: make(map[string]int),
	}
	for _, st := range s.LoadFavorites() {
		if st.StationUUID == "" {
			continue
		}
		if _, ok := m.index[st.StationUUID]; ok {
			continue
		}
		m.index[st.StationUUID] = len(m.items)
		m.items = append(m.items, st)
	}
	return m
}

// Add inserts a station into the favorites. Returns true if inserted,
// false when the station has no UUID or is already present.
func (m *Manager) Add(st station.Station) bool {
	if st.StationUUID == "" {
		return false
	}
	if _, ok := m.index[st.StationUUID]; ok {
		return false
	}
	m.index[st.StationUUID] = len(m.items)
	m.items = append(m.items, st)
	m.save()
	return true
}

// Remove deletes a station from the favorites by UUID. Returns true if an
// entry was removed.
func (m *Manager) Remove(uuid string) bool {
	pos, ok := m.index[uuid]
	if !ok {
		return false
	}
	m.items = append(m.items[:pos], m.items[pos+1:]...)
	delete(m.index, uuid)
	for i := pos; i < len(m.items); i++ {
		m.index[m.items[i].StationUUID] = i
	}
	m.save()
	return true
}

// Toggle flips the favorite status of a station. Returns the new state:
// true when the station is now a favorite. Stations without a UUID are
// rejected with false.
func (m *Manager) Toggle(st station.Station) bool {
	if st.StationUUID == "" {
		return false
	}
	if m.IsFavorite(st.StationUUID) {
		m.Remove(st.StationUUID)
		return false
	}
	return m.Add(st)
}

// IsFavorite reports whether the UUID is in the favorites.
func (m *Manager) IsFavorite(uuid string) bool {
	_, ok := m.index[uuid]
	return ok
}

// All returns a copy of the favorites in insertion order. Mutating the
// returned slice does not affect the manager.
func (m *Manager) All() []station.Station {
	out := make([]station.Station, len(m.items))
	copy(out, m.items)
	return out
}

// Count returns the number of favorite stations.
func (m *Manager) Count() int {
	return len(m.items)
}

// Clear removes all favorites.
func (m *Manager) Clear() {
	m.items = nil
	m.index = make(map[string]int)
	m.save()
}

// save persists the current collection, reporting failures without
// rolling back.
func (m *Manager) save() {
	if err := m.store.SaveFavorites(m.All()); err != nil {
		colors.Warning(fmt.Sprintf("could not save favorites: %v", err))
	}
}
