// SPDX-License-Identifier: EPL-2.0

package rtc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/codec/pcmu"
	"github.com/ik5/micshim/utils"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog"
)

const (
	DefaultFrameDuration = 20 * time.Millisecond

	maxEmptyReads = 100
)

// SampleWriter is satisfied by *webrtc.TrackLocalStaticSample.
type SampleWriter interface {
	WriteSample(s media.Sample) error
}

// Publisher reads a capture source, converts it to 8 kHz mono μ-law and
// writes one sample per frame duration.
type Publisher struct {
	src    audio.Source
	writer SampleWriter

	frame  time.Duration
	pace   bool
	logger zerolog.Logger

	pcm    []float32
	frames atomic.Int64
}

type Option func(*Publisher)

func WithFrameDuration(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.frame = d
		}
	}
}

// WithPacing controls whether samples are released on a real-time ticker.
// Without pacing the source is drained as fast as it can be read.
func WithPacing(pace bool) Option {
	return func(p *Publisher) {
		p.pace = pace
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(src audio.Source, w SampleWriter, opts ...Option) *Publisher {
	p := &Publisher{
		writer: w,
		frame:  DefaultFrameDuration,
		pace:   true,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if src.Channels() != 1 {
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != pcmu.SampleRate {
		src = audio.NewResampler(src, pcmu.SampleRate)
	}
	p.src = src
	p.pcm = make([]float32, int(int64(pcmu.SampleRate)*int64(p.frame)/int64(time.Second)))

	return p
}

// Frames returns the number of samples written so far.
func (p *Publisher) Frames() int64 { return p.frames.Load() }

// Run publishes until ctx is done or the source ends. A source that ends
// returns nil.
func (p *Publisher) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if p.pace {
		ticker := time.NewTicker(p.frame)
		defer ticker.Stop()
		tick = ticker.C
	}

	p.logger.Debug().Dur("frame", p.frame).Bool("paced", p.pace).Msg("publishing audio")

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		done, err := p.publishFrame()
		if err != nil {
			return err
		}
		if done {
			p.logger.Debug().Int64("frames", p.Frames()).Msg("audio source ended")
			return nil
		}
	}
}

// publishFrame writes one frame. It reports true once the source has ended;
// a final partial frame is still written.
func (p *Publisher) publishFrame() (bool, error) {
	n := 0
	ended := false
	empty := 0

	for n < len(p.pcm) {
		got, err := p.src.ReadSamples(p.pcm[n:])
		n += got

		if errors.Is(err, io.EOF) {
			ended = true
			break
		}
		if err != nil {
			return true, fmt.Errorf("reading capture audio: %w", err)
		}

		if got == 0 {
			empty++
			if empty >= maxEmptyReads {
				return true, io.ErrNoProgress
			}
		}
	}

	if n == 0 {
		return ended, nil
	}

	payload := make([]byte, n)
	for i, v := range p.pcm[:n] {
		payload[i] = pcmu.Encode(utils.Float32ToInt16(v))
	}

	duration := time.Duration(n) * time.Second / pcmu.SampleRate
	if err := p.writer.WriteSample(media.Sample{Data: payload, Duration: duration}); err != nil {
		return true, fmt.Errorf("writing audio sample: %w", err)
	}
	p.frames.Add(1)

	return ended, nil
}
