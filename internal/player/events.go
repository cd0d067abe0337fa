// Package player implements the playback coordinator: a small state
// machine between the UI and the audio engine. The coordinator owns the
// playback state and translates raw engine notifications into a fixed set
// of typed events.
package player

// State is the playback state of the coordinator.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateStopped State = "stopped"
	StateError   State = "error"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Metadata keys forwarded by the coordinator.
const (
	MetaTitle        = "title"
	MetaOrganization = "organization"
	MetaGenre        = "genre"
	MetaBitrate      = "bitrate"
)

// Event is the tagged union of coordinator notifications. The concrete
// variants are StateChanged, MetadataChanged, and PlaybackError. Events
// are delivered on a single channel and consumed on one goroutine.
type Event interface {
	isEvent()
}

// StateChanged signals a playback state transition.
type StateChanged struct {
	State State
}

// MetadataChanged carries one in-stream metadata update. It is emitted
// only while playing and only when the value differs from the previous
// one for the same key.
type MetadataChanged struct {
	Key   string
	Value string
}

// PlaybackError carries a human-readable engine failure message.
type PlaybackError struct {
	Message string
}

func (StateChanged) isEvent()    {}
func (MetadataChanged) isEvent() {}
func (PlaybackError) isEvent()   {}
