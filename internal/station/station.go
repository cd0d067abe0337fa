// Package station provides the domain layer for radio stations.
// It contains the canonical station record, value semantics, and the
// filtering, deduplication, and grouping services built on it.
package station

import "strings"

// Station represents a single internet radio stream and its metadata.
// StationUUID is the natural key: two stations with the same UUID are the
// same station, regardless of name.
type Station struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Country     string `json:"country"`
	CountryCode string `json:"countrycode"`
	Language    string `json:"language"`
	Tags        string `json:"tags"`
	Votes       int    `json:"votes"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
}

// IsPlayable reports whether the station has a stream URL to play.
func (s Station) IsPlayable() bool {
	return s.URL != ""
}

// Matches reports whether the station matches the given filter text.
// The match is a case-insensitive substring search over name, country,
// and tags. An empty filter matches everything.
func (s Station) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(s.Name), needle) ||
		strings.Contains(strings.ToLower(s.Country), needle) ||
		strings.Contains(strings.ToLower(s.Tags), needle)
}

// Filter returns the stations matching the filter text, preserving order.
func Filter(stations []Station, filter string) []Station {
	if filter == "" {
		return stations
	}
	result := make([]Station, 0, len(stations))
	for _, s := range stations {
		if s.Matches(filter) {
			result = append(result, s)
		}
	}
	return result
}

// Dedupe removes stations whose StationUUID appeared earlier in the
// sequence, keeping the first occurrence. Stations without a UUID are
// dropped. Order is otherwise preserved.
func Dedupe(stations []Station) []Station {
	seen := make(map[string]struct{}, len(stations))
	result := make([]Station, 0, len(stations))
	for _, s := range stations {
		if s.StationUUID == "" {
			continue
		}
		if _, ok := seen[s.StationUUID]; ok {
			continue
		}
		seen[s.StationUUID] = struct{}{}
		result = append(result, s)
	}
	return result
}
