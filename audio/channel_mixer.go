// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer converts a source to a fixed channel count. Down-mixing to
// mono averages all channels; a mono source is copied to every output
// channel; otherwise channels are mapped one to one and extra output
// channels stay silent.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: max(channels, 1),
		tmp:      make([]float32, 4096),
	}
}

// NewMonoMixer down-mixes src to a single channel.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	srcChannels := m.src.Channels()
	if srcChannels == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	samplesNeeded := frames * srcChannels

	// Grow tmp if needed, never shrink.
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	got := MixChannels(dst, m.channels, m.tmp[:n], srcChannels)

	return got * m.channels, err
}

// MixChannels converts interleaved src with srcChannels into dst with
// dstChannels and returns the number of frames written. dst must hold at
// least len(src)/srcChannels frames.
func MixChannels(dst []float32, dstChannels int, src []float32, srcChannels int) int {
	frames := len(src) / srcChannels

	switch {
	case dstChannels == srcChannels:
		copy(dst, src[:frames*srcChannels])

	case dstChannels == 1:
		switch srcChannels {
		case 2:
			for f := range frames {
				idx := f << 1
				dst[f] = (src[idx] + src[idx+1]) * 0.5
			}
		default:
			inv := float32(1.0) / float32(srcChannels)
			for f := range frames {
				sum := float32(0)
				base := f * srcChannels
				for c := range srcChannels {
					sum += src[base+c]
				}
				dst[f] = sum * inv
			}
		}

	case srcChannels == 1:
		for f := range frames {
			base := f * dstChannels
			for c := range dstChannels {
				dst[base+c] = src[f]
			}
		}

	default:
		shared := min(srcChannels, dstChannels)
		for f := range frames {
			in := src[f*srcChannels:]
			out := dst[f*dstChannels : (f+1)*dstChannels]
			copy(out, in[:shared])
			clear(out[shared:])
		}
	}

	return frames
}
