// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/media"
	"github.com/rs/zerolog"
)

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2

	decodeChunk = 4096
)

type State int

const (
	StateRunning State = iota
	StateClosed
)

func (s State) String() string {
	if s == StateClosed {
		return "closed"
	}
	return "running"
}

// Context owns a set of nodes rendered at one sample rate and channel count.
type Context struct {
	sampleRate int
	channels   int
	logger     zerolog.Logger

	closed atomic.Bool

	mtx     sync.Mutex
	sources []*BufferSourceNode
	dests   []*StreamDestinationNode
}

type Option func(*Context)

func WithSampleRate(rate int) Option {
	return func(c *Context) {
		if rate > 0 {
			c.sampleRate = rate
		}
	}
}

// WithChannels sets the channel count of destination tracks.
func WithChannels(channels int) Option {
	return func(c *Context) {
		if channels > 0 {
			c.channels = channels
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

func NewContext(opts ...Option) *Context {
	c := &Context{
		sampleRate: DefaultSampleRate,
		channels:   DefaultChannels,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) SampleRate() int { return c.sampleRate }
func (c *Context) Channels() int   { return c.channels }

func (c *Context) State() State {
	if c.closed.Load() {
		return StateClosed
	}
	return StateRunning
}

// DecodeAudioData detects the format of data, decodes it completely and
// resamples it to the context rate. The file's channel count is kept.
func (c *Context) DecodeAudioData(ctx context.Context, data []byte, reg *audio.Registry) (*audio.Buffer, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, dec, err := reg.Detect(data)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	defer src.Close()

	buf, err := audio.ReadBuffer(&cancelableSource{Source: src, ctx: ctx}, c.sampleRate, decodeChunk)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	c.logger.Debug().
		Str("format", format).
		Int("sample_rate", buf.SampleRate()).
		Int("channels", buf.Channels()).
		Dur("duration", buf.Duration()).
		Msg("decoded audio data")

	return buf, nil
}

// cancelableSource stops a decode when its context is done.
type cancelableSource struct {
	audio.Source
	ctx context.Context
}

func (s *cancelableSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.ReadSamples(dst)
}

// CreateBufferSource returns an unstarted, unconnected buffer source.
func (c *Context) CreateBufferSource() (*BufferSourceNode, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}

	n := &BufferSourceNode{ctx: c}

	c.mtx.Lock()
	c.sources = append(c.sources, n)
	c.mtx.Unlock()

	return n, nil
}

// CreateMediaStreamDestination returns a destination whose stream holds one
// live audio track. opts configure that track; media.OnStop hooks run when
// the track is stopped by its consumer or by Close.
func (c *Context) CreateMediaStreamDestination(opts ...media.TrackOption) (*StreamDestinationNode, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}

	d := &StreamDestinationNode{ctx: c}
	d.track = media.NewAudioTrack("MediaStreamAudioDestinationNode", &destinationSource{node: d}, opts...)
	d.stream = media.NewStream(d.track)

	c.mtx.Lock()
	c.dests = append(c.dests, d)
	c.mtx.Unlock()

	return d, nil
}

// Close stops all sources, disconnects all nodes and ends all destination
// tracks. It is idempotent and safe to call from a track's stop hook.
func (c *Context) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.mtx.Lock()
	sources := c.sources
	dests := c.dests
	c.sources = nil
	c.dests = nil
	c.mtx.Unlock()

	for _, s := range sources {
		s.teardown()
	}

	var errs []error
	for _, d := range dests {
		d.detachAll()
		if err := d.track.Stop(); err != nil {
			errs = append(errs, err)
		}
	}

	c.logger.Debug().
		Int("sources", len(sources)).
		Int("destinations", len(dests)).
		Msg("audio context closed")

	return errors.Join(errs...)
}
