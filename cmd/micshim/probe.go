// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/ik5/micshim"
	"github.com/ik5/micshim/audio"
	"github.com/ik5/micshim/formats"
	"github.com/spf13/cobra"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Fetch and decode the audio source and describe it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Source == "" {
				return fmt.Errorf("no audio source: set --source or MICSHIM_SOURCE")
			}

			data, err := micshim.NewFetcher(a.cfg, a.logger).Fetch(cmd.Context(), a.cfg.Source)
			if err != nil {
				return err
			}

			format, dec, err := formats.NewRegistry().Detect(data)
			if err != nil {
				return err
			}

			src, err := dec.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("decoding %s: %w", format, err)
			}
			defer src.Close()

			buf, err := audio.ReadBuffer(src, 0, 4096)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", format, err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "source\t%s\n", a.cfg.Source)
			fmt.Fprintf(w, "format\t%s\n", format)
			fmt.Fprintf(w, "sample rate\t%d Hz\n", buf.SampleRate())
			fmt.Fprintf(w, "channels\t%d\n", buf.Channels())
			fmt.Fprintf(w, "frames\t%d\n", buf.Frames())
			fmt.Fprintf(w, "duration\t%s\n", buf.Duration())
			return w.Flush()
		},
	}
}
