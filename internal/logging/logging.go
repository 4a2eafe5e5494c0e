// SPDX-License-Identifier: EPL-2.0

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelNone disables all logging.
const LevelNone = "none"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Configure sets the global level and output. With an empty file, logs go
// to stderr through a console writer; otherwise JSON lines are appended to
// file. The returned closer releases the file.
func Configure(level, file string) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	zerolog.SetGlobalLevel(lvl)

	if file == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return log.Logger, nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return log.Logger, f, nil
}

// ParseLevel accepts zerolog level names plus "none".
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))

	switch level {
	case "":
		return zerolog.InfoLevel, nil
	case LevelNone:
		return zerolog.Disabled, nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}
