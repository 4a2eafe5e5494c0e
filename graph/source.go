// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"slices"
	"sync"
	"time"

	"github.com/ik5/micshim/audio"
)

// BufferSourceNode plays an audio.Buffer into the destinations it is
// connected to. A node can be started only once.
type BufferSourceNode struct {
	ctx *Context

	mtx     sync.Mutex
	buffer  *audio.Buffer
	loop    bool
	started bool
	ended   bool
	pos     int // next frame of buffer to render
	dests   []*StreamDestinationNode
	scratch []float32
}

// SetBuffer binds the audio to play. The buffer can be set once, before Start.
func (n *BufferSourceNode) SetBuffer(buf *audio.Buffer) error {
	if n.ctx.closed.Load() {
		return ErrContextClosed
	}

	n.mtx.Lock()
	defer n.mtx.Unlock()

	if buf == nil {
		return ErrNoBuffer
	}
	if n.buffer != nil || n.started {
		return ErrInvalidState
	}
	n.buffer = buf
	return nil
}

func (n *BufferSourceNode) Buffer() *audio.Buffer {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return n.buffer
}

// SetLoop makes the source wrap to its first frame instead of ending.
func (n *BufferSourceNode) SetLoop(loop bool) {
	n.mtx.Lock()
	n.loop = loop
	n.mtx.Unlock()
}

func (n *BufferSourceNode) Loop() bool {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return n.loop
}

// Connect routes this source into dst. Connecting twice is a no-op.
func (n *BufferSourceNode) Connect(dst *StreamDestinationNode) error {
	if n.ctx.closed.Load() {
		return ErrContextClosed
	}
	if dst == nil || dst.ctx != n.ctx {
		return ErrInvalidAccess
	}

	n.mtx.Lock()
	if slices.Contains(n.dests, dst) {
		n.mtx.Unlock()
		return nil
	}
	n.dests = append(n.dests, dst)
	n.mtx.Unlock()

	dst.attach(n)
	return nil
}

// Disconnect removes every outgoing connection.
func (n *BufferSourceNode) Disconnect() {
	n.mtx.Lock()
	dests := n.dests
	n.dests = nil
	n.mtx.Unlock()

	for _, d := range dests {
		d.detach(n)
	}
}

// Start begins playback offset into the buffer. A looping source wraps the
// offset; a non-looping source started past its end ends immediately.
func (n *BufferSourceNode) Start(offset time.Duration) error {
	if n.ctx.closed.Load() {
		return ErrContextClosed
	}

	n.mtx.Lock()
	defer n.mtx.Unlock()

	if n.started || offset < 0 {
		return ErrInvalidState
	}
	if n.buffer == nil {
		return ErrNoBuffer
	}

	frames := n.buffer.Frames()
	pos := int(offset * time.Duration(n.buffer.SampleRate()) / time.Second)

	switch {
	case frames == 0:
		n.ended = true
	case pos >= frames && n.loop:
		pos %= frames
	case pos >= frames:
		n.ended = true
	}

	n.pos = pos
	n.started = true
	return nil
}

// Stop ends playback. Stopping an unstarted source is an error.
func (n *BufferSourceNode) Stop() error {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	if !n.started {
		return ErrInvalidState
	}
	n.ended = true
	return nil
}

// Ended reports whether playback has finished. A looping source only ends
// through Stop or by closing its context.
func (n *BufferSourceNode) Ended() bool {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	return n.ended
}

func (n *BufferSourceNode) teardown() {
	n.mtx.Lock()
	n.ended = true
	n.mtx.Unlock()

	n.Disconnect()
}

// render adds frames of audio, laid out with channels per frame, to dst.
func (n *BufferSourceNode) render(dst []float32, frames, channels int) {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	if !n.started || n.ended {
		return
	}

	data := n.buffer.Data()
	srcCh := n.buffer.Channels()
	total := n.buffer.Frames()

	done := 0
	for done < frames {
		chunk := min(frames-done, total-n.pos)
		in := data[n.pos*srcCh : (n.pos+chunk)*srcCh]

		if cap(n.scratch) < chunk*channels {
			n.scratch = make([]float32, chunk*channels)
		}
		scratch := n.scratch[:chunk*channels]
		audio.MixChannels(scratch, channels, in, srcCh)

		out := dst[done*channels : (done+chunk)*channels]
		for i, v := range scratch {
			out[i] += v
		}

		done += chunk
		n.pos += chunk

		if n.pos >= total {
			if !n.loop {
				n.ended = true
				return
			}
			n.pos = 0
		}
	}
}
