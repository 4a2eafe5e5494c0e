// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Sniffer is implemented by decoders that can recognise their format from
// the first bytes of a payload.
type Sniffer interface {
	Sniff(header []byte) bool
}

// SniffLen is the number of leading bytes handed to Sniffer implementations.
const SniffLen = 16

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg vorbis").
type Registry struct {
	codecs map[string]Decoder
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds or replaces the decoder for format. Detection tries formats
// in the order they were first registered.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in registration order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Detect returns the first registered decoder whose Sniff accepts data.
// Decoders that do not implement Sniffer are never selected.
func (r *Registry) Detect(data []byte) (string, Decoder, error) {
	if len(data) == 0 {
		return "", nil, ErrEmptyAudio
	}

	header := data
	if len(header) > SniffLen {
		header = header[:SniffLen]
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, format := range r.order {
		d := r.codecs[format]
		s, ok := d.(Sniffer)
		if ok && s.Sniff(header) {
			return format, d, nil
		}
	}

	return "", nil, ErrUnknownFormat
}
