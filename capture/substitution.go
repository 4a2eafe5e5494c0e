// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/fetch"
	"github.com/ik5/micshim/formats"
	"github.com/ik5/micshim/graph"
	"github.com/ik5/micshim/media"
	"github.com/rs/zerolog"
)

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 1
)

// Substitution is a Provider whose streams carry a looping audio file in
// place of the microphone.
type Substitution struct {
	real   Provider
	source string

	fetcher    fetch.Fetcher
	registry   *audio.Registry
	sampleRate int
	channels   int
	keepReal   bool
	fallback   FallbackPolicy
	logger     zerolog.Logger
}

type Option func(*Substitution)

func WithFetcher(f fetch.Fetcher) Option {
	return func(s *Substitution) {
		if f != nil {
			s.fetcher = f
		}
	}
}

func WithRegistry(r *audio.Registry) Option {
	return func(s *Substitution) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithSampleRate sets the rate of the audio graph and of the returned track.
func WithSampleRate(rate int) Option {
	return func(s *Substitution) {
		if rate > 0 {
			s.sampleRate = rate
		}
	}
}

func WithChannels(channels int) Option {
	return func(s *Substitution) {
		if channels > 0 {
			s.channels = channels
		}
	}
}

// WithKeepRealStream keeps the real capture running until the synthetic
// track is stopped. By default it is stopped as soon as it was granted.
func WithKeepRealStream(keep bool) Option {
	return func(s *Substitution) {
		s.keepReal = keep
	}
}

func WithFallback(p FallbackPolicy) Option {
	return func(s *Substitution) {
		s.fallback = p
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Substitution) {
		s.logger = logger
	}
}

// NewSubstitution replaces real's audio with the file at source, which may
// be any URI the fetcher understands.
func NewSubstitution(real Provider, source string, opts ...Option) (*Substitution, error) {
	if real == nil {
		return nil, ErrNilProvider
	}
	if isSubstituted(real) {
		return nil, ErrAlreadySubstituted
	}

	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrNoSource
	}

	s := &Substitution{
		real:       real,
		source:     source,
		registry:   formats.NewRegistry(),
		sampleRate: DefaultSampleRate,
		channels:   DefaultChannels,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = fetch.NewDefaultMux(
			fetch.NewHTTPFetcher(fetch.WithHTTPLogger(s.logger)),
			&fetch.FileFetcher{},
		)
	}

	return s, nil
}

func (s *Substitution) Source() string { return s.source }

// Unwrap returns the real provider.
func (s *Substitution) Unwrap() Provider { return s.real }

// GetUserMedia asks the real provider for c and, once granted, returns a
// new stream whose only track plays the configured audio file in a loop.
// Errors from the real provider are returned unchanged.
func (s *Substitution) GetUserMedia(ctx context.Context, c media.Constraints) (*media.Stream, error) {
	realStream, err := s.real.GetUserMedia(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("source", s.source).Msg("fetching audio file")

	stream, err := s.synthesize(ctx, realStream)
	if err != nil {
		if s.canFallback(ctx, err) {
			s.logger.Warn().Err(err).Str("source", s.source).Msg("audio substitution failed, returning real capture")
			return realStream, nil
		}
		if stopErr := realStream.Stop(); stopErr != nil {
			s.logger.Warn().Err(stopErr).Msg("stopping real capture")
		}
		return nil, err
	}

	if !s.keepReal {
		if err := realStream.Stop(); err != nil {
			s.logger.Warn().Err(err).Msg("stopping real capture")
		}
	}

	return stream, nil
}

// canFallback reports whether err may be answered with the real capture.
// Only fetch and decode failures qualify, and never once ctx is done.
func (s *Substitution) canFallback(ctx context.Context, err error) bool {
	if s.fallback != FallbackRealCapture || ctx.Err() != nil {
		return false
	}

	var fetchErr *FetchError
	var decodeErr *DecodeError
	return errors.As(err, &fetchErr) || errors.As(err, &decodeErr)
}

// synthesize builds buffer source -> stream destination in a fresh graph.
// The graph is closed on every failure; on success it is owned by the
// returned track.
func (s *Substitution) synthesize(ctx context.Context, realStream *media.Stream) (_ *media.Stream, err error) {
	data, err := s.fetcher.Fetch(ctx, s.source)
	if err != nil {
		return nil, &FetchError{Source: s.source, Err: err}
	}

	g := graph.NewContext(
		graph.WithSampleRate(s.sampleRate),
		graph.WithChannels(s.channels),
		graph.WithLogger(s.logger),
	)
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	buf, err := g.DecodeAudioData(ctx, data, s.registry)
	if err != nil {
		return nil, &DecodeError{Source: s.source, Err: err}
	}

	src, err := g.CreateBufferSource()
	if err != nil {
		return nil, fmt.Errorf("creating buffer source: %w", err)
	}
	if err := src.SetBuffer(buf); err != nil {
		return nil, fmt.Errorf("binding audio buffer: %w", err)
	}
	src.SetLoop(true)

	// The real stream is only tied to the track once the track is handed out;
	// a failed build leaves it to the caller.
	owned := false
	hooks := []media.TrackOption{media.OnStop(g.Close)}
	if s.keepReal {
		hooks = append(hooks, media.OnStop(func() error {
			if !owned {
				return nil
			}
			return realStream.Stop()
		}))
	}

	dst, err := g.CreateMediaStreamDestination(hooks...)
	if err != nil {
		return nil, fmt.Errorf("creating stream destination: %w", err)
	}
	if err := src.Connect(dst); err != nil {
		return nil, fmt.Errorf("connecting audio graph: %w", err)
	}
	if err := src.Start(0); err != nil {
		return nil, fmt.Errorf("starting playback: %w", err)
	}

	tracks := dst.Stream().AudioTracks()
	if len(tracks) != 1 {
		return nil, fmt.Errorf("stream destination has %d audio tracks", len(tracks))
	}

	owned = true

	s.logger.Info().
		Str("source", s.source).
		Int("sample_rate", s.sampleRate).
		Int("channels", s.channels).
		Dur("loop", buf.Duration()).
		Msg("substituted capture audio")

	return media.NewStream(tracks[0]), nil
}
