// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDeviceUnavailable = errors.New("capture device unavailable")

	ErrNilProvider        = errors.New("no capture provider")
	ErrNoSource           = errors.New("no audio source configured")
	ErrAlreadySubstituted = errors.New("capture provider is already substituted")

	ErrUnknownFallback = errors.New("unknown fallback policy")
)

// FetchError reports a failure to retrieve the audio resource.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching audio %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports audio data that could not be decoded.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding audio %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
