// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"

	"github.com/ik5/micshim/capture"
	"github.com/ik5/micshim/media"
)

// Deny refuses every request, as a user dismissing the permission prompt.
type Deny struct{}

func (Deny) GetUserMedia(context.Context, media.Constraints) (*media.Stream, error) {
	return nil, capture.ErrPermissionDenied
}
