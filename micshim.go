// SPDX-License-Identifier: EPL-2.0

package micshim

import (
	"github.com/ik5/micshim/capture"
	"github.com/ik5/micshim/config"
	"github.com/ik5/micshim/fetch"
	"github.com/ik5/micshim/formats"
	"github.com/rs/zerolog"
)

// NewFetcher builds the resource fetcher described by cfg: http(s) with
// the configured timeout, retries and size limit, files relative to
// fetch.root, and data URIs.
func NewFetcher(cfg *config.Config, logger zerolog.Logger) fetch.Fetcher {
	httpFetcher := fetch.NewHTTPFetcher(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithRetries(cfg.Fetch.Retries),
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithHTTPLogger(logger),
	)

	return fetch.NewDefaultMux(httpFetcher, &fetch.FileFetcher{
		Root:     cfg.Fetch.Root,
		MaxBytes: cfg.Fetch.MaxBytes,
	})
}

// New wraps real in a substitution configured by cfg.
func New(real capture.Provider, cfg *config.Config, logger zerolog.Logger) (*capture.Substitution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return capture.NewSubstitution(real, cfg.Source,
		capture.WithFetcher(NewFetcher(cfg, logger)),
		capture.WithRegistry(formats.NewRegistry()),
		capture.WithSampleRate(cfg.SampleRate),
		capture.WithChannels(cfg.Channels),
		capture.WithKeepRealStream(cfg.KeepRealStream),
		capture.WithFallback(cfg.FallbackPolicy()),
		capture.WithLogger(logger),
	)
}
