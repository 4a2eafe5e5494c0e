// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Fetcher returns the complete body of the resource named by uri.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

type FetcherFunc func(ctx context.Context, uri string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, uri string) ([]byte, error) {
	return f(ctx, uri)
}

// Mux routes a URI to the Fetcher registered for its scheme.
type Mux struct {
	mtx      sync.RWMutex
	fetchers map[string]Fetcher
}

func NewMux() *Mux {
	return &Mux{fetchers: make(map[string]Fetcher)}
}

// NewDefaultMux handles http, https, file and data URIs.
func NewDefaultMux(httpFetcher *HTTPFetcher, fileFetcher *FileFetcher) *Mux {
	m := NewMux()
	m.Handle("http", httpFetcher)
	m.Handle("https", httpFetcher)
	m.Handle("file", fileFetcher)
	m.Handle("data", DataFetcher{})
	return m
}

// Handle registers f for scheme, replacing any previous registration.
func (m *Mux) Handle(scheme string, f Fetcher) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.fetchers[strings.ToLower(scheme)] = f
}

func (m *Mux) Fetch(ctx context.Context, uri string) ([]byte, error) {
	scheme := Scheme(uri)

	m.mtx.RLock()
	f, ok := m.fetchers[scheme]
	m.mtx.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	return f.Fetch(ctx, uri)
}

// Scheme returns the lower-cased scheme of uri, or "file" when uri has none
// (plain and Windows drive paths).
func Scheme(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || len(u.Scheme) <= 1 {
		return "file"
	}
	return strings.ToLower(u.Scheme)
}
