// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/ik5/micshim/internal/logging"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 64 << 20
)

// HTTPFetcher downloads http and https resources. By default a request is
// attempted once; WithRetries enables retrying connection errors and 5xx
// responses.
type HTTPFetcher struct {
	client   *retryablehttp.Client
	maxBytes int64
	logger   zerolog.Logger
}

type HTTPOption func(*HTTPFetcher)

func WithRetries(n int) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client.RetryMax = max(n, 0)
	}
}

// WithRetryWait bounds the backoff between attempts.
func WithRetryWait(minWait, maxWait time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client.RetryWaitMin = minWait
		f.client.RetryWaitMax = maxWait
	}
}

// WithTimeout limits each attempt, including reading the body.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client.HTTPClient.Timeout = d
	}
}

// WithMaxBytes caps the body size; larger bodies fail with ErrTooLarge.
func WithMaxBytes(n int64) HTTPOption {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client.HTTPClient = c
		}
	}
}

func WithHTTPLogger(logger zerolog.Logger) HTTPOption {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient.Timeout = DefaultTimeout
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	f := &HTTPFetcher{
		client:   client,
		maxBytes: DefaultMaxBytes,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	client.Logger = logging.NewLeveled(f.logger)
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		f.logger.Trace().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("attempt", attempt).
			Msg("fetching resource")
	}

	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: uri, StatusCode: resp.StatusCode}
	}

	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("fetching %s: %w", uri, ErrTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("fetching %s: %w", uri, ErrTooLarge)
	}

	f.logger.Debug().
		Str("url", uri).
		Int("bytes", len(data)).
		Str("content_type", resp.Header.Get("Content-Type")).
		Msg("fetched resource")

	return data, nil
}
