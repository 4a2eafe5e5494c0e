// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"

	"github.com/ik5/micshim/media"
	"github.com/rs/zerolog"
)

// PortAudio captures from the system's default input device. Each granted
// stream owns one PortAudio input stream; stopping the audio track closes
// it. Video requests get a placeholder track.
//
// The device is only available in binaries built with -tags portaudio, which
// needs libportaudio. Other builds fail every audio request with
// capture.ErrDeviceUnavailable.
type PortAudio struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
	Logger          *zerolog.Logger
}

func (p PortAudio) GetUserMedia(ctx context.Context, c media.Constraints) (*media.Stream, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if p.Logger != nil {
		logger = *p.Logger
	}

	stream := media.NewStream()

	if c.Audio != nil {
		rate := firstPositive(c.Audio.SampleRate, p.SampleRate, DefaultSampleRate)
		channels := firstPositive(c.Audio.ChannelCount, p.Channels, DefaultChannels)
		frames := firstPositive(p.FramesPerBuffer, rate/50)

		src, err := openInput(rate, channels, frames)
		if err != nil {
			return nil, err
		}

		logger.Debug().
			Int("sample_rate", rate).
			Int("channels", channels).
			Int("frames_per_buffer", frames).
			Msg("opened default input device")

		stream.AddTrack(media.NewAudioTrack("Default input device", src))
	}
	if c.Video != nil {
		stream.AddTrack(media.NewVideoTrack("Placeholder camera"))
	}

	return stream, nil
}
