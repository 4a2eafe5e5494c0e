// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/utils"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const outputChannels = 2

// mp3Reader is the part of gomp3.Decoder the source needs, to allow testing.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    []byte // odd trailing byte from the previous read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst)*2 - len(s.pending)
	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	s.buf = s.buf[:len(dst)*2]
	copy(s.buf, s.pending)
	have := len(s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[have : have+bytesNeeded])
	have += n

	samples := have / 2
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8))
	}
	if have%2 == 1 {
		s.pending = append(s.pending, s.buf[have-1])
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, err
}

// Decoder reads MPEG-1/2 Layer III through github.com/hajimehoshi/go-mp3.
type Decoder struct{}

// Sniff accepts an ID3v2 tag or a bare MPEG audio frame sync.
func (Decoder) Sniff(header []byte) bool {
	if len(header) >= 3 && string(header[:3]) == "ID3" {
		return true
	}
	// 11 sync bits, layer III (01).
	return len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0 && header[1]&0x06 == 0x02
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
		pending:    make([]byte, 0, 1),
	}, nil
}
