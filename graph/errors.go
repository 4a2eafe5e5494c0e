// SPDX-License-Identifier: EPL-2.0

package graph

import "errors"

var (
	ErrContextClosed = errors.New("audio context is closed")
	ErrInvalidState  = errors.New("invalid node state")
	ErrNoBuffer      = errors.New("buffer source has no buffer")
	ErrInvalidAccess = errors.New("nodes belong to different contexts")
	ErrNilRegistry   = errors.New("no decoder registry")
)
