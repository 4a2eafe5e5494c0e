// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// FileFetcher reads local files named by a path or a file:// URL.
// Relative paths are resolved against Root when it is set.
type FileFetcher struct {
	Root     string
	MaxBytes int64
}

func (f *FileFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.path(uri)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	defer file.Close()

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetching %s: %w", uri, ErrTooLarge)
	}

	return data, nil
}

func (f *FileFetcher) path(uri string) (string, error) {
	path := uri
	if Scheme(uri) == "file" {
		if u, err := url.Parse(uri); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
			if u.Host != "" && u.Host != "localhost" {
				return "", fmt.Errorf("%w: remote file host %q", ErrUnsupportedScheme, u.Host)
			}
			path = u.Path
			if u.Opaque != "" {
				path = u.Opaque
			}
		}
	}

	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	return path, nil
}
