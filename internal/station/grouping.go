package station

import (
	"sort"
	"strings"
)

// fallbackCountry is the group used for stations with no country field.
const fallbackCountry = "Unknown"

// Group represents stations from one country.
type Group struct {
	Country  string
	Stations []Station
}

// GroupByCountry groups stations by country name for display. The home
// country group comes first; the remaining groups are ordered
// alphabetically (case-insensitive) by country name. Station order within
// a group follows the input order.
func GroupByCountry(stations []Station, homeCountry string) []Group {
	if len(stations) == 0 {
		return []Group{}
	}

	byCountry := make(map[string][]Station)
	for _, s := range stations {
		country := s.Country
		if country == "" {
			country = fallbackCountry
		}
		byCountry[country] = append(byCountry[country], s)
	}

	groups := make([]Group, 0, len(byCountry))
	for country, members := range byCountry {
		groups = append(groups, Group{Country: country, Stations: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		iHome := groups[i].Country == homeCountry
		jHome := groups[j].Country == homeCountry
		if iHome != jHome {
			return iHome
		}
		return strings.ToLower(groups[i].Country) < strings.ToLower(groups[j].Country)
	})

	return groups
}

// Flatten returns the stations of all groups in display order.
func Flatten(groups []Group) []Station {
	var result []Station
	for _, g := range groups {
		result = append(result, g.Stations...)
	}
	return result
}
