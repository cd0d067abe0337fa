package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/radiotray/internal/station"
)

// staticFavorites is a FavoritesSource over a fixed slice.
type staticFavorites []station.Station

func (f staticFavorites) All() []station.Station { return f }

func st(uuid, name, country string) station.Station {
	return station.Station{StationUUID: uuid, Name: name, Country: country, URL: "http://" + uuid}
}

func sample() []station.Station {
	return []station.Station{
		st("u1", "Radio Bremen", "Germany"),
		st("u2", "Radio 1", "The Netherlands"),
		st("u3", "Klara", "Belgium"),
		st("u4", "3FM", "The Netherlands"),
	}
}

func newTestCatalog(favs ...station.Station) *Catalog {
	c := New("The Netherlands", staticFavorites(favs))
	c.SetStations(sample())
	return c
}

func TestGroupsHomeCountryFirst(t *testing.T) {
	c := newTestCatalog()

	groups := c.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "The Netherlands", groups[0].Country)
	assert.Equal(t, "Belgium", groups[1].Country)
	assert.Equal(t, "Germany", groups[2].Country)
}

func TestFirstStationAutoSelectedOnLoad(t *testing.T) {
	c := newTestCatalog()

	// First station of the first (home country) group.
	assert.Equal(t, "u2", c.SelectedUUID())
	s, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "Radio 1", s.Name)
}

func TestAutoSelectionDoesNotOverrideExisting(t *testing.T) {
	c := New("The Netherlands", staticFavorites(nil))
	c.Select("u3")
	c.SetStations(sample())
	assert.Equal(t, "u3", c.SelectedUUID())
}

func TestNoSelectionOnEmptyLoad(t *testing.T) {
	c := New("The Netherlands", staticFavorites(nil))
	c.SetStations(nil)

	assert.Empty(t, c.SelectedUUID())
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestFilterNarrowsDisplayList(t *testing.T) {
	c := newTestCatalog()

	c.SetFilter("radio")
	list := c.DisplayList()
	require.Len(t, list, 2)
	assert.Equal(t, "Radio 1", list[0].Name)
	assert.Equal(t, "Radio Bremen", list[1].Name)

	c.SetFilter("")
	assert.Len(t, c.DisplayList(), 4)
}

func TestSelectionSurvivesFilteringItOut(t *testing.T) {
	c := newTestCatalog()
	c.Select("u3")

	c.SetFilter("radio")
	assert.Equal(t, "u3", c.SelectedUUID())
	_, ok := c.Selected()
	assert.True(t, ok)
}

func TestViewSwitchResetsFilter(t *testing.T) {
	c := newTestCatalog(st("u3", "Klara", "Belgium"))
	c.SetFilter("radio")

	c.SetViewMode(ViewFavorites)

	assert.Equal(t, ViewFavorites, c.ViewMode())
	assert.Empty(t, c.FilterText())
	list := c.DisplayList()
	require.Len(t, list, 1)
	assert.Equal(t, "Klara", list[0].Name)
}

func TestSetViewModeIgnoresInvalidAndNoop(t *testing.T) {
	c := newTestCatalog()
	c.SetFilter("radio")

	c.SetViewMode(ViewMode("bogus"))
	assert.Equal(t, ViewAll, c.ViewMode())
	assert.Equal(t, "radio", c.FilterText())

	// Re-selecting the current view keeps the filter too.
	c.SetViewMode(ViewAll)
	assert.Equal(t, "radio", c.FilterText())
}

func TestFavoritesViewReflectsSourceChanges(t *testing.T) {
	favs := &growingFavorites{}
	c := New("The Netherlands", favs)
	c.SetStations(sample())
	c.SetViewMode(ViewFavorites)

	assert.Empty(t, c.DisplayList())

	favs.items = append(favs.items, st("u4", "3FM", "The Netherlands"))
	require.Len(t, c.DisplayList(), 1)
}

type growingFavorites struct {
	items []station.Station
}

func (g *growingFavorites) All() []station.Station { return g.items }

func TestLookupFallsBackToFavorites(t *testing.T) {
	// A favorite that is not part of the fetched collection anymore.
	c := newTestCatalog(st("u9", "Gone FM", "Iceland"))

	s, ok := c.Lookup("u9")
	require.True(t, ok)
	assert.Equal(t, "Gone FM", s.Name)

	_, ok = c.Lookup("")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{"by uuid", "u3", "u3", true},
		{"exact name", "klara", "u3", true},
		{"substring prefers display order", "radio", "u2", true},
		{"no match", "jazz24", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := c.Resolve(tt.query)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, s.StationUUID)
			}
		})
	}
}
