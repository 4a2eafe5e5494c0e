// SPDX-License-Identifier: EPL-2.0

package media

// Constraints describes the media a caller requests from a capture
// provider. A nil member means the kind is not requested.
type Constraints struct {
	Audio *AudioConstraints
	Video *VideoConstraints
}

// AudioConstraints are hints for an audio capture. Zero values leave the
// choice to the provider.
type AudioConstraints struct {
	DeviceID         string
	SampleRate       int
	ChannelCount     int
	EchoCancellation *bool
	NoiseSuppression *bool
	AutoGainControl  *bool
}

// VideoConstraints are hints for a video capture.
type VideoConstraints struct {
	DeviceID  string
	Width     int
	Height    int
	FrameRate float64
}

// AudioOnly requests a default audio capture.
func AudioOnly() Constraints {
	return Constraints{Audio: &AudioConstraints{}}
}

// AudioVideo requests default audio and video captures.
func AudioVideo() Constraints {
	return Constraints{Audio: &AudioConstraints{}, Video: &VideoConstraints{}}
}

// Validate rejects a request that asks for no media at all.
func (c Constraints) Validate() error {
	if c.Audio == nil && c.Video == nil {
		return ErrNoMediaRequested
	}
	return nil
}
