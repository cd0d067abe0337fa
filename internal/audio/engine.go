package audio

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/config"
	"github.com/cristianoliveira/radiotray/internal/player"
)

// dialTimeout bounds connecting to a stream; the stream itself has no
// total timeout.
const dialTimeout = 10 * time.Second

const notificationBuffer = 32

// speakerBuffer is the mixer buffer length.
const speakerBuffer = time.Second / 10

// Options configure an Engine.
type Options struct {
	UserAgent string
	Client    *http.Client
}

// Engine streams shoutcast/icecast mp3 over the system speaker. It
// implements the player Engine boundary: one stream at a time, metadata
// and stream-end reported asynchronously.
type Engine struct {
	mu sync.Mutex

	userAgent string
	client    *http.Client
	notif     chan player.Notification

	speakerOnce sync.Once
	mixerRate   beep.SampleRate

	current *session

	// notifyMu guards notif and closed. notify runs on the stream
	// reader goroutine while Close runs on the caller's, and it must
	// not take e.mu: the metadata callback fires inside the decoder
	// while Play already holds it.
	notifyMu sync.Mutex
	closed   bool
}

// session holds the resources of one live stream.
type session struct {
	body     io.Closer
	streamer beep.StreamSeekCloser
	volume   *effects.Volume
}

// New creates an Engine configured from the global configuration.
func New() *Engine {
	return NewWithOptions(Options{UserAgent: config.Get("user_agent", "radiotray/1.0")})
}

// NewWithOptions creates an Engine with explicit options.
func NewWithOptions(opts Options) *Engine {
	if opts.Client == nil {
		opts.Client = &http.Client{
			// Streaming: never time out the body, only the dial.
			Transport: &http.Transport{DisableCompression: true},
		}
	}
	return &Engine{
		userAgent: opts.UserAgent,
		client:    opts.Client,
		notif:     make(chan player.Notification, notificationBuffer),
	}
}

// Notifications returns the engine's report channel.
func (e *Engine) Notifications() <-chan player.Notification {
	return e.notif
}

// Play connects to the stream URL and starts playing it at the given
// volume. Any previous stream is torn down first.
func (e *Engine) Play(url string, volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	s, err := e.openStream(url, volume)
	if err != nil {
		return err
	}
	e.current = s

	speaker.Clear()
	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// The callback runs under the speaker lock; leave it before
		// taking the engine lock.
		go e.streamEnded(s)
	})))
	e.notify(player.EngineStateChange{Playing: true})
	return nil
}

// openStream dials the URL, reports the stream headers, and builds the
// decode chain.
func (e *Engine) openStream(url string, volume float64) (*session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid stream url: %w", err)
	}
	req.Header.Set("Icy-MetaData", "1")
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect to stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	e.reportHeaders(resp.Header)

	var rd io.Reader = resp.Body
	if metaint, _ := strconv.Atoi(resp.Header.Get("icy-metaint")); metaint > 0 {
		rd = newICYReader(resp.Body, metaint, e.reportInBandMeta)
	}

	decoded, format, err := mp3.Decode(&streamBody{Reader: rd, Closer: resp.Body})
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("decode stream: %w", err)
	}

	e.speakerOnce.Do(func() {
		e.mixerRate = format.SampleRate
		if err := speaker.Init(e.mixerRate, e.mixerRate.N(speakerBuffer)); err != nil {
			colors.Error(fmt.Sprintf("could not open audio device: %v", err))
		}
	})

	var stream beep.Streamer = decoded
	if format.SampleRate != e.mixerRate {
		stream = beep.Resample(4, format.SampleRate, e.mixerRate, decoded)
	}

	vol := &effects.Volume{Streamer: stream, Base: 2}
	applyVolume(vol, volume)

	return &session{body: resp.Body, streamer: decoded, volume: vol}, nil
}

// SetVolume adjusts the current stream's volume.
func (e *Engine) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return
	}
	speaker.Lock()
	applyVolume(e.current.volume, volume)
	speaker.Unlock()
}

// Stop tears down the current stream without reporting a stream end;
// requested stops are tracked by the caller.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.current == nil {
		return
	}
	speaker.Clear()
	_ = e.current.streamer.Close()
	_ = e.current.body.Close()
	e.current = nil
}

// Close stops playback and closes the notification channel.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.notifyMu.Lock()
	if e.closed {
		e.notifyMu.Unlock()
		return nil
	}
	e.closed = true
	close(e.notif)
	e.notifyMu.Unlock()

	e.stopLocked()
	return nil
}

// streamEnded runs on the speaker goroutine when the decode chain
// drains. A stream we already replaced or stopped is not reported.
func (e *Engine) streamEnded(s *session) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != s {
		return
	}
	_ = s.streamer.Close()
	_ = s.body.Close()
	e.current = nil

	if err := s.streamer.Err(); err != nil {
		e.notify(player.EngineError{Message: err.Error()})
		return
	}
	e.notify(player.EngineStateChange{Playing: false})
}

// reportHeaders surfaces the stream's ICY response headers as metadata.
func (e *Engine) reportHeaders(h http.Header) {
	if name := h.Get("icy-name"); name != "" {
		e.notify(player.EngineMetadata{Key: player.MetaOrganization, Value: name})
	}
	if genre := h.Get("icy-genre"); genre != "" {
		e.notify(player.EngineMetadata{Key: player.MetaGenre, Value: genre})
	}
	if br := h.Get("icy-br"); br != "" {
		e.notify(player.EngineMetadata{Key: player.MetaBitrate, Value: br})
	}
}

// reportInBandMeta surfaces in-band metadata; StreamTitle carries the
// current song.
func (e *Engine) reportInBandMeta(meta map[string]string) {
	if title, ok := meta["StreamTitle"]; ok {
		e.notify(player.EngineMetadata{Key: player.MetaTitle, Value: title})
	}
}

// notify reports one notification without blocking. Safe to call with
// or without e.mu held, and after Close.
func (e *Engine) notify(n player.Notification) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if e.closed {
		return
	}
	select {
	case e.notif <- n:
	default:
		colors.Debug("engine notification dropped")
	}
}

// applyVolume maps the linear [0.0,1.0] range onto the exponential
// volume effect; 0 mutes.
func applyVolume(vol *effects.Volume, volume float64) {
	volume = math.Max(0, math.Min(1, volume))
	vol.Silent = volume == 0
	vol.Volume = (volume - 1) * 4
}

// streamBody pairs the metadata-stripped reader with the response body
// closer.
type streamBody struct {
	io.Reader
	io.Closer
}
