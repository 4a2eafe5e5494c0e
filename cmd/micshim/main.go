// SPDX-License-Identifier: EPL-2.0

// Command micshim records or inspects the audio a substituted capture
// produces.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("micshim failed")
		stop()
		os.Exit(1)
	}
}
