// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")
	ErrTooLarge          = errors.New("resource exceeds size limit")
	ErrInvalidDataURI    = errors.New("invalid data URI")
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}
