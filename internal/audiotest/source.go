// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
	"sync/atomic"
)

// Waveform returns the value of channel at frame.
type Waveform func(frame, channel int) float32

// Source is a synthetic audio.Source of a fixed number of frames.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
	closed     atomic.Bool
}

// NewSource generates frames frames of wave at sampleRate.
func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	step := 2 * math.Pi * frequency / float64(sampleRate)
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(step * float64(frame)))
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed.Load() }

// ReadSamples writes whole frames only. The read that produces the last
// frame also returns io.EOF.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		out := dst[f*s.channels : (f+1)*s.channels]
		for c := range out {
			out[c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
