// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/ik5/micshim/internal/audiotest"
)

// prefixDecoder sniffs a fixed magic prefix.
type prefixDecoder struct {
	magic string
}

func (d *prefixDecoder) Decode(r io.Reader) (Source, error) {
	return audiotest.NewSilentSource(8000, 1, 10), nil
}

func (d *prefixDecoder) Sniff(header []byte) bool {
	return bytes.HasPrefix(header, []byte(d.magic))
}

// blindDecoder cannot sniff.
type blindDecoder struct{}

func (blindDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &prefixDecoder{magic: "RIFF"}
	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok || got != decoder {
		t.Fatalf("Get(wav) = %v, %v, want registered decoder", got, ok)
	}

	if _, ok := registry.Get("flac"); ok {
		t.Error("Get(flac) ok = true for unregistered format")
	}
}

func TestRegistry_OverwriteKeepsOrder(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &prefixDecoder{magic: "RIFF"})
	registry.Register("ogg", &prefixDecoder{magic: "OggS"})
	replacement := &prefixDecoder{magic: "RIFF"}
	registry.Register("wav", replacement)

	formats := registry.Formats()
	if len(formats) != 2 || formats[0] != "wav" || formats[1] != "ogg" {
		t.Errorf("Formats() = %v, want [wav ogg]", formats)
	}

	if got, _ := registry.Get("wav"); got != replacement {
		t.Error("Register() did not replace decoder")
	}
}

func TestRegistry_Detect(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("blind", blindDecoder{})
	registry.Register("ogg", &prefixDecoder{magic: "OggS"})
	registry.Register("any-ogg", &prefixDecoder{magic: "Ogg"})

	format, dec, err := registry.Detect([]byte("OggS and then a lot more payload than SniffLen bytes"))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if format != "ogg" || dec == nil {
		t.Errorf("Detect() = %q, want first matching format ogg", format)
	}

	if _, _, err := registry.Detect([]byte("ID3")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Detect(unknown) error = %v, want ErrUnknownFormat", err)
	}

	if _, _, err := registry.Detect(nil); !errors.Is(err, ErrEmptyAudio) {
		t.Errorf("Detect(nil) error = %v, want ErrEmptyAudio", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(string(rune('a'+i)), &prefixDecoder{magic: "x"})
		}()
		go func() {
			defer wg.Done()
			_, _, _ = registry.Detect([]byte("xyz"))
			_ = registry.Formats()
		}()
	}

	wg.Wait()

	if got := len(registry.Formats()); got != 10 {
		t.Errorf("len(Formats()) = %d, want 10", got)
	}
}
