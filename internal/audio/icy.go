// Package audio implements the beep-backed audio engine: HTTP stream
// dial, mp3 decode, speaker output, and shoutcast/icecast in-band
// metadata.
package audio

import (
	"io"
	"strings"
)

// icyReader strips in-band ICY metadata from a shoutcast stream,
// passing only audio bytes through. The server interleaves a metadata
// block after every metaint audio bytes: one length byte (count of
// 16-byte chunks) followed by the zero-padded payload, typically
// "StreamTitle='Artist - Song';".
type icyReader struct {
	src       io.Reader
	metaint   int
	remaining int // audio bytes until the next metadata block
	onMeta    func(map[string]string)
}

func newICYReader(src io.Reader, metaint int, onMeta func(map[string]string)) *icyReader {
	return &icyReader{
		src:       src,
		metaint:   metaint,
		remaining: metaint,
		onMeta:    onMeta,
	}
}

func (r *icyReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		if err := r.readMetaBlock(); err != nil {
			return 0, err
		}
		r.remaining = r.metaint
	}
	if len(p) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.src.Read(p)
	r.remaining -= n
	return n, err
}

func (r *icyReader) readMetaBlock() error {
	var length [1]byte
	if _, err := io.ReadFull(r.src, length[:]); err != nil {
		return err
	}
	size := int(length[0]) * 16
	if size == 0 {
		return nil
	}
	block := make([]byte, size)
	if _, err := io.ReadFull(r.src, block); err != nil {
		return err
	}
	if meta := parseICYBlock(block); len(meta) > 0 && r.onMeta != nil {
		r.onMeta(meta)
	}
	return nil
}

// parseICYBlock parses a zero-padded "Key='value';Key='value';" payload.
// Pairs with an empty value are dropped.
func parseICYBlock(block []byte) map[string]string {
	text := strings.TrimRight(string(block), "\x00")
	meta := make(map[string]string)
	for _, pair := range strings.Split(text, ";") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), "'")
		if key == "" || value == "" {
			continue
		}
		meta[key] = value
	}
	return meta
}
