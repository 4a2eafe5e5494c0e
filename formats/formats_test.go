// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"errors"
	"testing"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/internal/audiotest"
)

func TestNewRegistry_Detect(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr error
	}{
		{name: "wav", data: audiotest.WAV16(8000, 1, []int16{1}), want: WAV},
		{name: "aiff", data: []byte("FORM\x00\x00\x00\x10AIFFCOMM"), want: AIFF},
		{name: "aifc", data: []byte("FORM\x00\x00\x00\x10AIFCFVER"), want: AIFF},
		{name: "ogg", data: []byte("OggS\x00\x02\x00\x00"), want: Vorbis},
		{name: "mp3 id3", data: []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), want: MP3},
		{name: "mp3 frame", data: []byte{0xFF, 0xFB, 0x90, 0x64}, want: MP3},
		{name: "html error page", data: []byte("<html><body>404</body></html>"), wantErr: audio.ErrUnknownFormat},
		{name: "empty", data: nil, wantErr: audio.ErrEmptyAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, dec, err := reg.Detect(tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Detect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got != tt.want || dec == nil {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRegistry_Formats(t *testing.T) {
	t.Parallel()

	got := NewRegistry().Formats()
	want := []string{WAV, AIFF, Vorbis, MP3}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
