// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/micshim/utils"
)

// maxEmptyReads bounds consecutive (0, nil) reads from a source before it
// is treated as stalled.
const maxEmptyReads = 100

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
//
// When the source already runs at the target rate the Resampler is a
// pass-through and samples are returned untouched.
type Resampler struct {
	src         Source
	dstRate     int
	ratio       float64 // source frames per output frame
	channels    int
	passthrough bool

	// Four-frame window around the read position:
	// win[0] = t-1, win[1] = t0, win[2] = t+1, win[3] = t+2.
	// real[i] is false for frames duplicated past the end of the source.
	win    [4][]float32
	real   [4]bool
	primed bool
	pos    float64 // fractional position between win[1] and win[2]

	// Block buffer for reading source frames.
	srcBuf []float32
	srcLen int
	srcOff int
	eof    bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
	filterReady bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		passthrough: src.SampleRate() == dstRate,
		srcBuf:      make([]float32, 1024*channels),
		// Simple one-pole low-pass when downsampling. This is not a
		// proper FIR anti-aliasing filter.
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}

	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame copies the next source frame into dst. It returns io.EOF once
// the source is exhausted.
func (r *Resampler) readFrame(dst []float32) error {
	empty := 0
	for r.srcOff+r.channels > r.srcLen {
		if r.eof {
			return io.EOF
		}

		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcLen = n - n%r.channels
		r.srcOff = 0

		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("%w", err)
		} else if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}

	copy(dst, r.srcBuf[r.srcOff:r.srcOff+r.channels])
	r.srcOff += r.channels

	if r.useFilter && !r.filterReady {
		// The first frame passes through and seeds the filter, so a constant
		// signal starts at its own level instead of ramping up from zero.
		copy(r.filterState, dst[:r.channels])
		r.filterReady = true
	} else if r.useFilter {
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return nil
}

// advance shifts the window by one frame and pulls a new frame into win[3].
// Past the end of the source the last frame is repeated and marked unreal.
func (r *Resampler) advance() error {
	last := r.win[0]
	copy(r.win[:], r.win[1:])
	r.win[3] = last
	copy(r.real[:], r.real[1:])

	err := r.readFrame(r.win[3])
	if errors.Is(err, io.EOF) {
		copy(r.win[3], r.win[2])
		r.real[3] = false
		return nil
	}
	if err != nil {
		return err
	}

	r.real[3] = true
	return nil
}

func (r *Resampler) prime() error {
	err := r.readFrame(r.win[1])
	if err != nil {
		return err
	}

	copy(r.win[0], r.win[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < 4; i++ {
		err := r.readFrame(r.win[i])
		if errors.Is(err, io.EOF) {
			copy(r.win[i], r.win[i-1])
			r.real[i] = false
			continue
		}
		if err != nil {
			return err
		}
		r.real[i] = true
	}

	r.primed = true
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.passthrough {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
