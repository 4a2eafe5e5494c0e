// SPDX-License-Identifier: EPL-2.0

package media

import "errors"

// ErrNoMediaRequested is returned for constraints that request neither audio nor video.
var ErrNoMediaRequested = errors.New("at least one of audio and video must be requested")
