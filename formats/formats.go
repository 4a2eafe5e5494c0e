// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder of this module into an audio.Registry.
package formats

import (
	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/formats/aiff"
	"github.com/ik5/micshim/formats/mp3"
	"github.com/ik5/micshim/formats/vorbis"
	"github.com/ik5/micshim/formats/wav"
)

// Format keys used by NewRegistry.
const (
	WAV    = "wav"
	AIFF   = "aiff"
	Vorbis = "ogg"
	MP3    = "mp3"
)

// NewRegistry returns a registry holding all supported decoders. MP3 is
// registered last because its frame-sync sniff is the loosest.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})
	reg.Register(Vorbis, vorbis.Decoder{})
	reg.Register(MP3, mp3.Decoder{})
	return reg
}
