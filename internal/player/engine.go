package player

// Engine is the audio backend boundary. An engine plays one stream at a
// time; Play on an already-playing engine is undefined, the coordinator
// always stops first. Notifications arrive asynchronously on the channel
// returned by Notifications and the channel is closed by Close.
type Engine interface {
	// Play starts streaming the given URL at the given volume [0.0,1.0].
	// A returned error means playback could not start.
	Play(url string, volume float64) error

	// SetVolume adjusts the volume of the current stream, if any.
	SetVolume(volume float64)

	// Stop tears down the current stream. Safe to call when idle.
	Stop()

	// Notifications returns the channel the engine reports on.
	Notifications() <-chan Notification

	// Close stops playback and releases the audio device. The
	// notifications channel is closed afterwards.
	Close() error
}

// Notification is the tagged union of raw engine reports, translated
// into Events by the coordinator.
type Notification interface {
	isNotification()
}

// EngineMetadata is an in-stream metadata key/value pair.
type EngineMetadata struct {
	Key   string
	Value string
}

// EngineStateChange reports the engine starting or finishing a stream.
// Playing false means end-of-stream or a completed stop.
type EngineStateChange struct {
	Playing bool
}

// EngineError reports a stream failure with human-readable text.
type EngineError struct {
	Message string
}

func (EngineMetadata) isNotification()    {}
func (EngineStateChange) isNotification() {}
func (EngineError) isNotification()       {}
