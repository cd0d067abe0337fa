package audio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseIsIdempotent(t *testing.T) {
	e := NewWithOptions(Options{UserAgent: "test"})

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, ok := <-e.Notifications()
	assert.False(t, ok)
}

func TestMetadataAfterCloseIsDropped(t *testing.T) {
	e := NewWithOptions(Options{UserAgent: "test"})
	require.NoError(t, e.Close())

	// In-band metadata can still arrive from a draining stream reader;
	// it must not hit the closed channel.
	e.reportInBandMeta(map[string]string{"StreamTitle": "late title"})
}

func TestMetadataConcurrentWithClose(t *testing.T) {
	e := NewWithOptions(Options{UserAgent: "test"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			e.reportInBandMeta(map[string]string{"StreamTitle": "song"})
		}
	}()

	require.NoError(t, e.Close())
	wg.Wait()
}
