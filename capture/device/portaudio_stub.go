// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package device

import (
	"fmt"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/capture"
)

func openInput(int, int, int) (audio.Source, error) {
	return nil, fmt.Errorf("%w: portaudio support not built in, rebuild with -tags portaudio", capture.ErrDeviceUnavailable)
}
