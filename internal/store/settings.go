// Package store provides the persistence boundary for settings, favorites,
// and the station cache. All reads degrade to defaults or empty results;
// the application must stay usable with a corrupt or absent state directory.
package store

import "encoding/json"

// Recognized settings keys.
const (
	KeyVolume           = "volume"
	KeyCacheExpiryHours = "cache_expiry_hours"
	KeyLastStationUUID  = "last_station_uuid"
)

// Default settings values.
const (
	DefaultVolume           = 0.8
	DefaultCacheExpiryHours = 24.0
)

// Settings holds user preferences as a flat key-value document. Unknown
// keys loaded from disk are preserved so older builds don't destroy newer
// settings files.
type Settings struct {
	Volume           float64
	CacheExpiryHours float64
	LastStationUUID  string

	// extra holds unrecognized keys for forward-compatible round-trips.
	extra map[string]any
}

// DefaultSettings returns settings with all default values.
func DefaultSettings() *Settings {
	return &Settings{
		Volume:           DefaultVolume,
		CacheExpiryHours: DefaultCacheExpiryHours,
	}
}

// SetVolume stores a volume clamped to [0.0, 1.0].
func (s *Settings) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.Volume = v
}

// Merge applies the values of a flat settings document over s, key by key.
// Recognized keys are validated; invalid values keep the current setting.
// Unrecognized keys are retained verbatim.
func (s *Settings) Merge(doc map[string]any) {
	for key, value := range doc {
		switch key {
		case KeyVolume:
			if v, ok := toFloat(value); ok && v >= 0 && v <= 1 {
				s.Volume = v
			}
		case KeyCacheExpiryHours:
			if v, ok := toFloat(value); ok && v > 0 {
				s.CacheExpiryHours = v
			}
		case KeyLastStationUUID:
			if v, ok := value.(string); ok {
				s.LastStationUUID = v
			}
		default:
			if s.extra == nil {
				s.extra = make(map[string]any)
			}
			s.extra[key] = value
		}
	}
}

// MarshalJSON renders the settings as a single flat JSON object.
func (s *Settings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.extra)+3)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc[KeyVolume] = s.Volume
	doc[KeyCacheExpiryHours] = s.CacheExpiryHours
	if s.LastStationUUID != "" {
		doc[KeyLastStationUUID] = s.LastStationUUID
	} else {
		doc[KeyLastStationUUID] = nil
	}
	return json.Marshal(doc)
}

// UnmarshalJSON resets to defaults and merges the document over them.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = *DefaultSettings()
	s.Merge(doc)
	return nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
