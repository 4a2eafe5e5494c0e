// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnknownFormat is returned when no registered decoder recognises a payload.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrEmptyAudio is returned for payloads or decodes that hold no samples.
	ErrEmptyAudio = errors.New("audio contains no samples")

	// ErrInvalidFormat reports a non-positive sample rate or channel count.
	ErrInvalidFormat = errors.New("invalid sample rate or channel count")
)
