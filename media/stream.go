// SPDX-License-Identifier: EPL-2.0

package media

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Stream groups the tracks returned by a capture call.
type Stream struct {
	id string

	mtx    sync.RWMutex
	tracks []Track
}

func NewStream(tracks ...Track) *Stream {
	return &Stream{
		id:     uuid.NewString(),
		tracks: append([]Track(nil), tracks...),
	}
}

func (s *Stream) ID() string { return s.id }

// Tracks returns all tracks in insertion order.
func (s *Stream) Tracks() []Track {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return append([]Track(nil), s.tracks...)
}

func (s *Stream) AudioTracks() []AudioTrack {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var out []AudioTrack
	for _, t := range s.tracks {
		if at, ok := t.(AudioTrack); ok && t.Kind() == KindAudio {
			out = append(out, at)
		}
	}
	return out
}

func (s *Stream) VideoTracks() []Track {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var out []Track
	for _, t := range s.tracks {
		if t.Kind() == KindVideo {
			out = append(out, t)
		}
	}
	return out
}

// AddTrack appends t unless a track with the same ID is already present.
func (s *Stream) AddTrack(t Track) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, have := range s.tracks {
		if have.ID() == t.ID() {
			return
		}
	}
	s.tracks = append(s.tracks, t)
}

// RemoveTrack drops the track with the given ID without stopping it.
func (s *Stream) RemoveTrack(id string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, t := range s.tracks {
		if t.ID() == id {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			return true
		}
	}
	return false
}

// Active reports whether any track is still live.
func (s *Stream) Active() bool {
	for _, t := range s.Tracks() {
		if t.ReadyState() == StateLive {
			return true
		}
	}
	return false
}

// Stop stops every track and returns the joined errors.
func (s *Stream) Stop() error {
	var errs []error
	for _, t := range s.Tracks() {
		if err := t.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
