package favorites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/radiotray/internal/station"
	"github.com/cristianoliveira/radiotray/internal/store"
)

// fakeStore records favorites writes and can simulate failures.
type fakeStore struct {
	favorites []station.Station
	saveCalls int
	failSave  bool
}

func (f *fakeStore) LoadSettings() *store.Settings               { return store.DefaultSettings() }
func (f *fakeStore) SaveSettings(*store.Settings) error          { return nil }
func (f *fakeStore) LoadFavorites() []station.Station            { return f.favorites }
func (f *fakeStore) SaveFavorites(st []station.Station) error {
	f.saveCalls++
	if f.failSave {
		return errors.New("disk full")
	}
	f.favorites = st
	return nil
}
func (f *fakeStore) LoadCache() []station.Station       { return nil }
func (f *fakeStore) SaveCache([]station.Station) error  { return nil }
func (f *fakeStore) IsCacheValid() bool                 { return false }
func (f *fakeStore) Close() error                       { return nil }

func st(uuid, name string) station.Station {
	return station.Station{StationUUID: uuid, Name: name, URL: "http://" + uuid}
}

func TestAddIsIdempotent(t *testing.T) {
	fs := &fakeStore{}
	m := NewManager(fs)

	assert.True(t, m.Add(st("u1", "One")))
	assert.False(t, m.Add(st("u1", "One again")))

	all := m.All()
	require.Len(t, all, 1)
	assert.Equal(t, "One", all[0].Name)
	assert.Equal(t, 1, fs.saveCalls)
}

func TestAddRejectsMissingUUID(t *testing.T) {
	m := NewManager(&fakeStore{})
	assert.False(t, m.Add(station.Station{Name: "no uuid"}))
	assert.Zero(t, m.Count())
}

func TestRemove(t *testing.T) {
	m := NewManager(&fakeStore{})
	m.Add(st("u1", "One"))
	m.Add(st("u2", "Two"))
	m.Add(st("u3", "Three"))

	assert.True(t, m.Remove("u2"))
	assert.False(t, m.Remove("u2"))
	assert.False(t, m.IsFavorite("u2"))

	// Remaining entries keep order and stay addressable
	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, "u1", all[0].StationUUID)
	assert.Equal(t, "u3", all[1].StationUUID)
	assert.True(t, m.Remove("u3"))
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	m := NewManager(&fakeStore{})
	s := st("u1", "One")

	assert.False(t, m.IsFavorite("u1"))
	assert.True(t, m.Toggle(s))
	assert.True(t, m.IsFavorite("u1"))
	assert.False(t, m.Toggle(s))
	assert.False(t, m.IsFavorite("u1"))
}

func TestToggleRejectsMissingUUID(t *testing.T) {
	m := NewManager(&fakeStore{})
	assert.False(t, m.Toggle(station.Station{Name: "no uuid"}))
	assert.Zero(t, m.Count())
}

func TestAllReturnsDefensiveCopy(t *testing.T) {
	m := NewManager(&fakeStore{})
	m.Add(st("u1", "One"))

	all := m.All()
	all[0].Name = "mutated"

	assert.Equal(t, "One", m.All()[0].Name)
}

func TestClear(t *testing.T) {
	m := NewManager(&fakeStore{})
	m.Add(st("u1", "One"))
	m.Add(st("u2", "Two"))

	m.Clear()

	assert.Zero(t, m.Count())
	assert.Empty(t, m.All())
	assert.False(t, m.IsFavorite("u1"))
}

func TestLoadsPersistedFavorites(t *testing.T) {
	fs := &fakeStore{favorites: []station.Station{
		st("u1", "One"),
		st("u1", "Duplicate"),
		{Name: "no uuid"},
		st("u2", "Two"),
	}}
	m := NewManager(fs)

	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, "One", all[0].Name)
	assert.Equal(t, "Two", all[1].Name)
}

func TestPersistenceFailureKeepsInMemoryState(t *testing.T) {
	fs := &fakeStore{failSave: true}
	m := NewManager(fs)

	assert.True(t, m.Add(st("u1", "One")))
	assert.True(t, m.IsFavorite("u1"))
	assert.Equal(t, 1, fs.saveCalls)
}

func TestRoundTripThroughJSONStore(t *testing.T) {
	js, err := store.NewJSONStore(t.TempDir())
	require.NoError(t, err)

	m := NewManager(js)
	m.Add(st("u1", "One"))
	m.Add(st("u2", "Two"))

	reloaded := NewManager(js)
	assert.Equal(t, m.All(), reloaded.All())
}
