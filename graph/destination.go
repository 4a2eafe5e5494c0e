// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"io"
	"slices"
	"sync"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/media"
)

// StreamDestinationNode exposes the mix of its inputs as a live audio track.
type StreamDestinationNode struct {
	ctx *Context

	mtx    sync.Mutex
	inputs []*BufferSourceNode

	track  *media.SourceTrack
	stream *media.Stream
}

// Stream returns the stream holding the destination's single audio track.
func (d *StreamDestinationNode) Stream() *media.Stream { return d.stream }

func (d *StreamDestinationNode) attach(n *BufferSourceNode) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if !slices.Contains(d.inputs, n) {
		d.inputs = append(d.inputs, n)
	}
}

func (d *StreamDestinationNode) detach(n *BufferSourceNode) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.inputs = slices.DeleteFunc(d.inputs, func(in *BufferSourceNode) bool {
		return in == n
	})
}

func (d *StreamDestinationNode) detachAll() {
	d.mtx.Lock()
	d.inputs = nil
	d.mtx.Unlock()
}

func (d *StreamDestinationNode) pull(dst []float32) (int, error) {
	if d.ctx.closed.Load() {
		return 0, io.EOF
	}

	channels := d.ctx.channels
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	clear(dst)

	d.mtx.Lock()
	inputs := slices.Clone(d.inputs)
	d.mtx.Unlock()

	frames := len(dst) / channels
	for _, in := range inputs {
		in.render(dst, frames, channels)
	}

	return len(dst), nil
}

// destinationSource adapts a destination node to audio.Source so it can
// back a media track.
type destinationSource struct {
	node *StreamDestinationNode
}

func (s *destinationSource) SampleRate() int { return s.node.ctx.sampleRate }
func (s *destinationSource) Channels() int   { return s.node.ctx.channels }

// BufSize is one 20 ms render quantum.
func (s *destinationSource) BufSize() int {
	return s.node.ctx.sampleRate / 50 * s.node.ctx.channels
}

func (s *destinationSource) ReadSamples(dst []float32) (int, error) {
	return s.node.pull(dst)
}

func (s *destinationSource) Close() error {
	s.node.detachAll()
	return nil
}
