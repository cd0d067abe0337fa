package player

import (
	"fmt"
	"sync"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/station"
)

// eventBuffer bounds the observer channel; a consumer that far behind
// has abandoned the session, so further events are dropped.
const eventBuffer = 64

// Coordinator drives playback. It is the single writer of the playback
// state: UI requests come in through Play/Stop/SetVolume, engine
// notifications come in on the engine channel, and both are serialized
// under one lock before any event goes out.
type Coordinator struct {
	mu sync.Mutex

	engine  Engine
	state   State
	current station.Station
	volume  float64
	meta    map[string]string

	events chan Event
	done   chan struct{}
}

// NewCoordinator creates a Coordinator in the Idle state and starts
// consuming the engine's notifications.
func NewCoordinator(engine Engine, volume float64) *Coordinator {
	c := &Coordinator{
		engine: engine,
		state:  StateIdle,
		volume: clampVolume(volume),
		meta:   make(map[string]string),
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go c.pump()
	return c
}

// Events returns the observer channel. It is closed when the engine's
// notification channel closes.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// State returns the current playback state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the station playback was last requested for, and
// whether it is playing right now.
func (c *Coordinator) Current() (station.Station, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.state == StatePlaying
}

// Play starts playback of the given station. A station without a stream
// URL is rejected as a no-op. When something is already playing, the old
// stream is stopped first; there are never two concurrent streams.
func (c *Coordinator) Play(st station.Station) {
	if !st.IsPlayable() {
		colors.Debug(fmt.Sprintf("play rejected, no stream URL: %s", st.Name))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		c.engine.Stop()
	}
	c.current = st
	c.meta = make(map[string]string)

	if err := c.engine.Play(st.URL, c.volume); err != nil {
		c.failLocked(err.Error())
		return
	}
	c.transitionLocked(StatePlaying)
}

// Stop stops the current stream, if any.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return
	}
	c.engine.Stop()
	c.transitionLocked(StateStopped)
}

// SetVolume adjusts the playback volume for the current and future
// streams. Values outside [0.0,1.0] are clamped.
func (c *Coordinator) SetVolume(volume float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = clampVolume(volume)
	c.engine.SetVolume(c.volume)
}

// Volume returns the current playback volume.
func (c *Coordinator) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// pump translates engine notifications into events until the engine's
// channel closes.
func (c *Coordinator) pump() {
	defer close(c.events)
	defer close(c.done)
	for n := range c.engine.Notifications() {
		c.handle(n)
	}
}

// Wait blocks until the engine's notification channel closes.
func (c *Coordinator) Wait() {
	<-c.done
}

func (c *Coordinator) handle(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch n := n.(type) {
	case EngineMetadata:
		// Metadata is only meaningful for the live stream, and only
		// when it actually changed.
		if c.state != StatePlaying {
			return
		}
		if c.meta[n.Key] == n.Value {
			return
		}
		c.meta[n.Key] = n.Value
		c.emitLocked(MetadataChanged{Key: n.Key, Value: n.Value})
	case EngineStateChange:
		if n.Playing {
			c.transitionLocked(StatePlaying)
			return
		}
		// End-of-stream; a stop we requested was already reported.
		if c.state == StatePlaying {
			c.transitionLocked(StateStopped)
		}
	case EngineError:
		if c.state != StatePlaying {
			return
		}
		c.engine.Stop()
		c.failLocked(n.Message)
	}
}

// failLocked surfaces an engine failure: Error, then back to Stopped so
// controls re-enable.
func (c *Coordinator) failLocked(message string) {
	c.emitLocked(PlaybackError{Message: message})
	c.transitionLocked(StateError)
	c.transitionLocked(StateStopped)
}

func (c *Coordinator) transitionLocked(next State) {
	if c.state == next {
		return
	}
	colors.Debug(fmt.Sprintf("playback %s -> %s", c.state, next))
	c.state = next
	c.emitLocked(StateChanged{State: next})
}

func (c *Coordinator) emitLocked(ev Event) {
	select {
	case c.events <- ev:
	default:
		colors.Debug("event dropped, observer not consuming")
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
