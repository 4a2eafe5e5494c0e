// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Buffer is fully decoded PCM audio held in memory as interleaved float32
// samples in [-1, 1].
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32
}

// NewBuffer wraps interleaved samples. Trailing samples that do not form a
// whole frame are dropped.
func NewBuffer(sampleRate, channels int, data []float32) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidFormat
	}

	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data[:len(data)-len(data)%channels],
	}, nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }

// Frames is the number of sample frames (samples per channel).
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.sampleRate)
}

// Data returns the interleaved samples. Callers must not modify them.
func (b *Buffer) Data() []float32 { return b.data }

// Reader returns a Source that plays the buffer once from the start.
func (b *Buffer) Reader() Source {
	return &bufferReader{buf: b}
}

type bufferReader struct {
	buf *Buffer
	off int
}

func (r *bufferReader) SampleRate() int { return r.buf.sampleRate }
func (r *bufferReader) Channels() int   { return r.buf.channels }
func (r *bufferReader) BufSize() int    { return 4096 }
func (r *bufferReader) Close() error    { return nil }

func (r *bufferReader) ReadSamples(dst []float32) (int, error) {
	if r.off >= len(r.buf.data) {
		return 0, io.EOF
	}

	n := copy(dst, r.buf.data[r.off:])
	r.off += n

	if r.off >= len(r.buf.data) {
		return n, io.EOF
	}
	return n, nil
}

// ReadBuffer drains src into a Buffer at targetRate. The source is resampled
// only when its rate differs from targetRate; a targetRate of zero keeps the
// source rate. bufferSize controls the read chunk size (e.g., 4096).
func ReadBuffer(src Source, targetRate int, bufferSize int) (*Buffer, error) {
	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidFormat
	}
	if targetRate <= 0 {
		targetRate = src.SampleRate()
	}

	var pipeline Source = src
	if targetRate != src.SampleRate() {
		pipeline = NewResampler(src, targetRate)
	}

	channels := pipeline.Channels()
	bufferSize = max(bufferSize-bufferSize%channels, channels)

	// Start with roughly two seconds and let append grow from there.
	data := make([]float32, 0, targetRate*channels*2)
	buf := make([]float32, bufferSize)
	empty := 0

	for {
		n, err := pipeline.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	if len(data) < channels {
		return nil, ErrEmptyAudio
	}

	return NewBuffer(targetRate, channels, data)
}
