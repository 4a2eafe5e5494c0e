// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"fmt"
	"strings"
)

// FallbackPolicy decides what a Substitution returns when the audio file
// cannot be fetched or decoded. Permission and device errors are always
// returned as is.
type FallbackPolicy int

const (
	// FallbackNone returns the failure to the caller.
	FallbackNone FallbackPolicy = iota
	// FallbackRealCapture returns the real capture stream unmodified.
	FallbackRealCapture
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackNone:
		return "none"
	case FallbackRealCapture:
		return "real"
	}
	return fmt.Sprintf("FallbackPolicy(%d)", int(p))
}

func ParseFallback(s string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FallbackNone, nil
	case "real", "real_capture":
		return FallbackRealCapture, nil
	}
	return FallbackNone, fmt.Errorf("%w: %q", ErrUnknownFallback, s)
}
