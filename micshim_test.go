// SPDX-License-Identifier: EPL-2.0

package micshim

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/micshim/capture"
	"github.com/ik5/micshim/capture/device"
	"github.com/ik5/micshim/config"
	"github.com/ik5/micshim/fetch"
	"github.com/ik5/micshim/formats/wav"
	"github.com/ik5/micshim/internal/audiotest"
	"github.com/ik5/micshim/media"
	"github.com/rs/zerolog"
)

func testConfig(source string) *config.Config {
	return &config.Config{
		Source:     source,
		SampleRate: 16000,
		Channels:   1,
		Fallback:   "none",
		Fetch: config.FetchConfig{
			Timeout:  5 * time.Second,
			MaxBytes: fetch.DefaultMaxBytes,
		},
		Log: config.LogConfig{Level: "info"},
	}
}

func TestNew_LoopsFileFromRoot(t *testing.T) {
	t.Parallel()

	pcm := audiotest.Ramp(1000)
	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 16000, 1, pcm); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "loop.wav"), file.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig("loop.wav")
	cfg.Fetch.Root = dir

	shim, err := New(device.Silent{}, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stream, err := shim.GetUserMedia(context.Background(), media.AudioVideo())
	if err != nil {
		t.Fatalf("GetUserMedia() error = %v", err)
	}
	defer stream.Stop()

	if len(stream.Tracks()) != 1 || len(stream.AudioTracks()) != 1 {
		t.Fatalf("stream has %d tracks, want a single audio track", len(stream.Tracks()))
	}

	// 250 ms at 16 kHz is four full loops of the 1000-sample file.
	got, err := RecordMono16(stream.AudioTracks()[0], 16000, 250*time.Millisecond)
	if err != nil {
		t.Fatalf("RecordMono16() error = %v", err)
	}
	if len(got) != 4000 {
		t.Fatalf("recorded %d samples, want 4000", len(got))
	}

	for i, s := range got {
		if want := pcm[i%len(pcm)]; s != want {
			t.Fatalf("sample %d = %d, want %d", i, s, want)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(device.Silent{}, testConfig(""), zerolog.Nop()); !errors.Is(err, capture.ErrNoSource) {
		t.Errorf("New() with empty source error = %v, want ErrNoSource", err)
	}

	bad := testConfig("loop.wav")
	bad.SampleRate = -1
	if _, err := New(device.Silent{}, bad, zerolog.Nop()); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() with invalid config error = %v, want ErrInvalidConfig", err)
	}

	if _, err := New(nil, testConfig("loop.wav"), zerolog.Nop()); !errors.Is(err, capture.ErrNilProvider) {
		t.Errorf("New() with nil provider error = %v, want ErrNilProvider", err)
	}
}

func TestNew_HTTPNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	shim, err := New(device.Silent{}, testConfig(srv.URL+"/missing.wav"), zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stream, err := shim.GetUserMedia(context.Background(), media.AudioOnly())
	if stream != nil {
		t.Errorf("GetUserMedia() stream = %v, want nil", stream)
	}

	var fetchErr *capture.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("GetUserMedia() error = %v, want *capture.FetchError", err)
	}

	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("GetUserMedia() error = %v, want status 404", err)
	}
}

func TestNew_FallbackFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig("data:text/plain,not%20audio")
	cfg.Fallback = "real"

	shim, err := New(device.Silent{}, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stream, err := shim.GetUserMedia(context.Background(), media.AudioOnly())
	if err != nil {
		t.Fatalf("GetUserMedia() error = %v", err)
	}
	defer stream.Stop()

	if got := stream.AudioTracks()[0].Label(); got != "Silent microphone" {
		t.Errorf("fallback track label = %q, want the real device", got)
	}
}
