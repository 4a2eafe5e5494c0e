// SPDX-License-Identifier: EPL-2.0

package media

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ik5/micshim/audio"
)

type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

type ReadyState int

const (
	StateLive ReadyState = iota
	StateEnded
)

func (s ReadyState) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("ReadyState(%d)", int(s))
	}
}

// Track is a single media track within a Stream.
type Track interface {
	ID() string
	Kind() Kind
	Label() string
	ReadyState() ReadyState
	Enabled() bool
	// SetEnabled mutes (false) or unmutes the track. A disabled audio
	// track keeps running but produces silence.
	SetEnabled(enabled bool)
	// Stop ends the track and releases whatever produces it. It is safe to
	// call more than once.
	Stop() error
}

// AudioTrack is a Track whose samples can be pulled as PCM. Once the track
// has ended, by Stop or because its producer ran out, ReadSamples returns
// (0, io.EOF).
type AudioTrack interface {
	Track
	audio.Source
}

// base holds the state shared by all track implementations.
type base struct {
	id      string
	kind    Kind
	label   string
	muted   atomic.Bool
	ended   atomic.Bool
	stopped atomic.Bool
	onStop  []func() error
}

func (b *base) init(kind Kind, label string, opts []TrackOption) {
	var o trackOptions
	for _, opt := range opts {
		opt(&o)
	}

	b.id = uuid.NewString()
	b.kind = kind
	b.label = label
	b.onStop = o.onStop
}

func (b *base) ID() string              { return b.id }
func (b *base) Kind() Kind              { return b.kind }
func (b *base) Label() string           { return b.label }
func (b *base) Enabled() bool           { return !b.muted.Load() }
func (b *base) SetEnabled(enabled bool) { b.muted.Store(!enabled) }

func (b *base) ReadyState() ReadyState {
	if b.ended.Load() {
		return StateEnded
	}
	return StateLive
}

// stop releases the track once. Later and re-entrant calls, such as a stop
// hook that ends up stopping the same track, return nil immediately.
func (b *base) stop(release func() error) error {
	b.ended.Store(true)
	if !b.stopped.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if release != nil {
		if err := release(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, fn := range b.onStop {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TrackOption configures a track at construction.
type TrackOption func(*trackOptions)

type trackOptions struct {
	onStop []func() error
}

// OnStop registers fn to run once when the track is stopped, after its
// source has been closed.
func OnStop(fn func() error) TrackOption {
	return func(o *trackOptions) {
		o.onStop = append(o.onStop, fn)
	}
}

// SourceTrack is an AudioTrack fed by an audio.Source.
type SourceTrack struct {
	base
	src audio.Source
}

// NewAudioTrack wraps src as a live audio track. The track ends when it is
// stopped or when src reports io.EOF.
func NewAudioTrack(label string, src audio.Source, opts ...TrackOption) *SourceTrack {
	t := &SourceTrack{src: src}
	t.init(KindAudio, label, opts)
	return t
}

func (t *SourceTrack) SampleRate() int { return t.src.SampleRate() }
func (t *SourceTrack) Channels() int   { return t.src.Channels() }
func (t *SourceTrack) BufSize() int    { return t.src.BufSize() }

func (t *SourceTrack) ReadSamples(dst []float32) (int, error) {
	if t.ended.Load() {
		return 0, io.EOF
	}

	n, err := t.src.ReadSamples(dst)
	if !t.Enabled() {
		clear(dst[:n])
	}

	if errors.Is(err, io.EOF) {
		t.ended.Store(true)
	}
	return n, err
}

func (t *SourceTrack) Stop() error {
	return t.stop(t.src.Close)
}

// Close stops the track, so a track can be handed to code expecting an
// audio.Source.
func (t *SourceTrack) Close() error {
	return t.Stop()
}

// VideoTrack is a placeholder video track. It carries identity and state
// only; frames are out of scope for this module.
type VideoTrack struct {
	base
}

func NewVideoTrack(label string, opts ...TrackOption) *VideoTrack {
	t := &VideoTrack{}
	t.init(KindVideo, label, opts)
	return t
}

func (t *VideoTrack) Stop() error {
	return t.stop(nil)
}
