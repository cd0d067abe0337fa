package player

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/radiotray/internal/station"
)

// fakeEngine records calls and lets tests inject notifications.
type fakeEngine struct {
	mu        sync.Mutex
	notif     chan Notification
	playURLs  []string
	playVols  []float64
	stopCalls int
	playErr   error
	volume    float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{notif: make(chan Notification, 8)}
}

func (f *fakeEngine) Play(url string, volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.playErr != nil {
		return f.playErr
	}
	f.playURLs = append(f.playURLs, url)
	f.playVols = append(f.playVols, volume)
	return nil
}

func (f *fakeEngine) SetVolume(volume float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = volume
}

func (f *fakeEngine) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls++
}

func (f *fakeEngine) Notifications() <-chan Notification { return f.notif }

func (f *fakeEngine) Close() error {
	close(f.notif)
	return nil
}

func (f *fakeEngine) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCalls
}

func playable(uuid, name string) station.Station {
	return station.Station{StationUUID: uuid, Name: name, URL: "http://stream/" + uuid}
}

// nextEvent receives one event or fails the test.
func nextEvent(t *testing.T, c *Coordinator) Event {
	t.Helper()
	select {
	case ev, ok := <-c.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPlayTransitionsToPlaying(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)
	require.Equal(t, StateIdle, c.State())

	c.Play(playable("u1", "One"))

	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, []string{"http://stream/u1"}, eng.playURLs)
	assert.Equal(t, []float64{0.5}, eng.playVols)
	assert.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))

	current, playing := c.Current()
	assert.True(t, playing)
	assert.Equal(t, "One", current.Name)
}

func TestPlayRejectsStationWithoutURL(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	c.Play(station.Station{StationUUID: "u1", Name: "broken"})

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, eng.playURLs)
}

func TestPlayWhilePlayingStopsOldStreamFirst(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	c.Play(playable("u1", "One"))
	c.Play(playable("u2", "Two"))

	assert.Equal(t, 1, eng.stops())
	assert.Equal(t, []string{"http://stream/u1", "http://stream/u2"}, eng.playURLs)
	assert.Equal(t, StatePlaying, c.State())

	current, _ := c.Current()
	assert.Equal(t, "u2", current.StationUUID)
}

func TestStop(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	// Stop before anything played is a no-op.
	c.Stop()
	assert.Zero(t, eng.stops())
	assert.Equal(t, StateIdle, c.State())

	c.Play(playable("u1", "One"))
	c.Stop()

	assert.Equal(t, 1, eng.stops())
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))
	assert.Equal(t, StateChanged{State: StateStopped}, nextEvent(t, c))
}

func TestPlayFailureSurfacesErrorThenStopped(t *testing.T) {
	eng := newFakeEngine()
	eng.playErr = errors.New("connection refused")
	c := NewCoordinator(eng, 0.5)

	c.Play(playable("u1", "One"))

	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, PlaybackError{Message: "connection refused"}, nextEvent(t, c))
	assert.Equal(t, StateChanged{State: StateError}, nextEvent(t, c))
	assert.Equal(t, StateChanged{State: StateStopped}, nextEvent(t, c))

	// Controls re-enable: a later play works again.
	eng.playErr = nil
	c.Play(playable("u2", "Two"))
	assert.Equal(t, StatePlaying, c.State())
}

func TestEngineErrorWhilePlaying(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	c.Play(playable("u1", "One"))
	require.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))

	eng.notif <- EngineError{Message: "stream stalled"}

	assert.Equal(t, PlaybackError{Message: "stream stalled"}, nextEvent(t, c))
	assert.Equal(t, StateChanged{State: StateError}, nextEvent(t, c))
	assert.Equal(t, StateChanged{State: StateStopped}, nextEvent(t, c))
	assert.Equal(t, 1, eng.stops())
}

func TestEndOfStreamStops(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	c.Play(playable("u1", "One"))
	require.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))

	eng.notif <- EngineStateChange{Playing: false}

	assert.Equal(t, StateChanged{State: StateStopped}, nextEvent(t, c))
}

func TestMetadataForwardedOnlyOnChange(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	c.Play(playable("u1", "One"))
	require.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))

	eng.notif <- EngineMetadata{Key: MetaTitle, Value: "Song A"}
	eng.notif <- EngineMetadata{Key: MetaTitle, Value: "Song A"}
	eng.notif <- EngineMetadata{Key: MetaBitrate, Value: "128"}
	eng.notif <- EngineMetadata{Key: MetaTitle, Value: "Song B"}

	// The repeated "Song A" produces nothing; the channel order proves it.
	assert.Equal(t, MetadataChanged{Key: MetaTitle, Value: "Song A"}, nextEvent(t, c))
	assert.Equal(t, MetadataChanged{Key: MetaBitrate, Value: "128"}, nextEvent(t, c))
	assert.Equal(t, MetadataChanged{Key: MetaTitle, Value: "Song B"}, nextEvent(t, c))
}

func TestMetadataIgnoredWhenNotPlaying(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	eng.notif <- EngineMetadata{Key: MetaTitle, Value: "ghost"}
	eng.notif <- EngineStateChange{Playing: true}

	// Only the state change comes through.
	assert.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))
}

func TestMetadataResetsBetweenStations(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	c.Play(playable("u1", "One"))
	require.Equal(t, StateChanged{State: StatePlaying}, nextEvent(t, c))
	eng.notif <- EngineMetadata{Key: MetaTitle, Value: "Song A"}
	require.Equal(t, MetadataChanged{Key: MetaTitle, Value: "Song A"}, nextEvent(t, c))

	c.Play(playable("u2", "Two"))

	// Same title on the new stream is news again.
	eng.notif <- EngineMetadata{Key: MetaTitle, Value: "Song A"}
	assert.Equal(t, MetadataChanged{Key: MetaTitle, Value: "Song A"}, nextEvent(t, c))
}

func TestSetVolumeClampsAndForwards(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 1.7)
	assert.Equal(t, 1.0, c.Volume())

	c.SetVolume(-0.3)
	assert.Equal(t, 0.0, c.Volume())
	assert.Equal(t, 0.0, eng.volume)

	c.SetVolume(0.6)
	assert.Equal(t, 0.6, c.Volume())
}

func TestEventsCloseWithEngine(t *testing.T) {
	eng := newFakeEngine()
	c := NewCoordinator(eng, 0.5)

	require.NoError(t, eng.Close())
	c.Wait()

	_, ok := <-c.Events()
	assert.False(t, ok)
}
