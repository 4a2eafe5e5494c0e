// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package device

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/capture"
)

// inputSource reads interleaved float32 frames from a blocking PortAudio
// input stream.
type inputSource struct {
	rate     int
	channels int

	mtx    sync.Mutex
	stream *portaudio.Stream
	buf    []float32
	off    int
	closed bool
}

func openInput(rate, channels, frames int) (audio.Source, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %w", capture.ErrDeviceUnavailable, err)
	}

	src := &inputSource{
		rate:     rate,
		channels: channels,
		buf:      make([]float32, frames*channels),
	}
	src.off = len(src.buf)

	stream, err := portaudio.OpenDefaultStream(channels, 0, float64(rate), frames, src.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", capture.ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", capture.ErrDeviceUnavailable, err)
	}

	src.stream = stream
	return src, nil
}

func (s *inputSource) SampleRate() int { return s.rate }
func (s *inputSource) Channels() int   { return s.channels }
func (s *inputSource) BufSize() int    { return len(s.buf) }

func (s *inputSource) ReadSamples(dst []float32) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return 0, io.EOF
	}

	dst = dst[:len(dst)-len(dst)%s.channels]
	n := 0
	for n < len(dst) {
		if s.off >= len(s.buf) {
			// An overflow only means frames were dropped before this read.
			if err := s.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
				return n, fmt.Errorf("reading input device: %w", err)
			}
			s.off = 0
		}

		c := copy(dst[n:], s.buf[s.off:])
		s.off += c
		n += c
	}

	return n, nil
}

func (s *inputSource) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := errors.Join(s.stream.Stop(), s.stream.Close())
	return errors.Join(err, portaudio.Terminate())
}
