// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ik5/micshim"
	"github.com/ik5/micshim/capture"
	"github.com/ik5/micshim/capture/device"
	"github.com/ik5/micshim/formats/wav"
	"github.com/ik5/micshim/media"
	"github.com/spf13/cobra"
)

func newRecordCmd(a *app) *cobra.Command {
	var (
		out      string
		duration time.Duration
		dev      string
		rate     int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture through the substitution and write mono 16-bit WAV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := newDevice(dev, a)
			if err != nil {
				return err
			}

			shim, err := micshim.New(provider, a.cfg, a.logger)
			if err != nil {
				return err
			}

			stream, err := shim.GetUserMedia(cmd.Context(), media.AudioOnly())
			if err != nil {
				return err
			}
			defer stream.Stop()

			tracks := stream.AudioTracks()
			if len(tracks) == 0 {
				return fmt.Errorf("capture returned no audio track")
			}

			pcm, err := micshim.RecordMono16(tracks[0], rate, duration)
			if err != nil {
				return err
			}
			if rate <= 0 {
				rate = tracks[0].SampleRate()
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()

			if err := wav.WriteWAV16(f, rate, 1, pcm); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			a.logger.Info().
				Str("out", out).
				Int("sample_rate", rate).
				Int("samples", len(pcm)).
				Msg("recorded capture")

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d samples at %d Hz to %s\n", len(pcm), rate, out)
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "capture.wav", "output WAV file")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 5*time.Second, "how long to record")
	cmd.Flags().StringVar(&dev, "device", "silent", "real capture device: silent, portaudio or deny")
	cmd.Flags().IntVar(&rate, "rate", 16000, "output sample rate, 0 keeps the capture rate")

	return cmd
}

func newDevice(name string, a *app) (capture.Provider, error) {
	switch name {
	case "silent", "":
		return device.Silent{SampleRate: a.cfg.SampleRate, Channels: a.cfg.Channels}, nil
	case "portaudio":
		return device.PortAudio{SampleRate: a.cfg.SampleRate, Channels: a.cfg.Channels, Logger: &a.logger}, nil
	case "deny":
		return device.Deny{}, nil
	}
	return nil, fmt.Errorf("unknown device %q", name)
}
