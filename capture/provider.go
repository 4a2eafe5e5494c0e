// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"

	"github.com/ik5/micshim/media"
)

// Provider grants media capture streams.
type Provider interface {
	GetUserMedia(ctx context.Context, c media.Constraints) (*media.Stream, error)
}

type ProviderFunc func(ctx context.Context, c media.Constraints) (*media.Stream, error)

func (f ProviderFunc) GetUserMedia(ctx context.Context, c media.Constraints) (*media.Stream, error) {
	return f(ctx, c)
}

// wrapper is implemented by providers that decorate another provider.
type wrapper interface {
	Unwrap() Provider
}

// isSubstituted reports whether p, or any provider it wraps, is a
// Substitution.
func isSubstituted(p Provider) bool {
	for p != nil {
		if _, ok := p.(*Substitution); ok {
			return true
		}
		w, ok := p.(wrapper)
		if !ok {
			return false
		}
		p = w.Unwrap()
	}
	return false
}
