// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"

	"github.com/ik5/micshim/media"
)

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 1
)

// Silent grants every valid request with an endless silent microphone and,
// when video is requested, a placeholder camera track.
type Silent struct {
	SampleRate int
	Channels   int
}

func (s Silent) GetUserMedia(ctx context.Context, c media.Constraints) (*media.Stream, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream := media.NewStream()

	if c.Audio != nil {
		rate := firstPositive(c.Audio.SampleRate, s.SampleRate, DefaultSampleRate)
		channels := firstPositive(c.Audio.ChannelCount, s.Channels, DefaultChannels)
		stream.AddTrack(media.NewAudioTrack("Silent microphone", &silence{rate: rate, channels: channels}))
	}
	if c.Video != nil {
		stream.AddTrack(media.NewVideoTrack("Placeholder camera"))
	}

	return stream, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// silence is an endless audio.Source of zeros.
type silence struct {
	rate     int
	channels int
}

func (s *silence) SampleRate() int { return s.rate }
func (s *silence) Channels() int   { return s.channels }
func (s *silence) BufSize() int    { return s.rate / 50 * s.channels }
func (s *silence) Close() error    { return nil }

func (s *silence) ReadSamples(dst []float32) (int, error) {
	n := len(dst) - len(dst)%s.channels
	clear(dst[:n])
	return n, nil
}
