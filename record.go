// SPDX-License-Identifier: EPL-2.0

package micshim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/utils"
)

// ErrInvalidDuration is returned for a non-positive recording length.
var ErrInvalidDuration = errors.New("recording duration must be positive")

const recordChunk = 4096

// RecordMono16 reads d worth of audio from src, resampled to targetRate and
// mixed to mono, as 16-bit PCM. It is meant for endless sources such as
// capture tracks; a source that ends early yields what it produced.
//
// The pipeline is:
//  1. Resample to targetRate, only when the rates differ
//  2. Average all channels to mono
//  3. Convert float32 samples to int16
func RecordMono16(src audio.Source, targetRate int, d time.Duration) ([]int16, error) {
	if d <= 0 {
		return nil, ErrInvalidDuration
	}
	if targetRate <= 0 {
		targetRate = src.SampleRate()
	}

	var pipeline audio.Source = src
	if src.SampleRate() != targetRate {
		pipeline = audio.NewResampler(pipeline, targetRate)
	}
	mono := audio.NewMonoMixer(pipeline)

	total := int(int64(targetRate) * int64(d) / int64(time.Second))
	pcm16 := make([]int16, 0, total)
	buf := make([]float32, min(recordChunk, total))

	empty := 0
	for len(pcm16) < total {
		want := min(len(buf), total-len(pcm16))
		n, err := mono.ReadSamples(buf[:want])

		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return pcm16, fmt.Errorf("recording: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= 100 {
				return pcm16, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return pcm16, nil
}
