// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// DataFetcher decodes RFC 2397 data URIs such as
// "data:audio/wav;base64,UklGR...".
type DataFetcher struct{}

func (DataFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		rest, ok = strings.CutPrefix(uri, "DATA:")
	}
	if !ok {
		return nil, ErrInvalidDataURI
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrInvalidDataURI
	}

	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
		}
		return data, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}
	return []byte(text), nil
}
