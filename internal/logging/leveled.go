// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Leveled adapts a zerolog.Logger to the key/value leveled logger used by
// github.com/hashicorp/go-retryablehttp.
type Leveled struct {
	logger zerolog.Logger
}

func NewLeveled(logger zerolog.Logger) *Leveled {
	return &Leveled{logger: logger}
}

func (l *Leveled) Error(msg string, keysAndValues ...any) {
	fields(l.logger.Error(), keysAndValues).Msg(msg)
}

func (l *Leveled) Info(msg string, keysAndValues ...any) {
	fields(l.logger.Info(), keysAndValues).Msg(msg)
}

func (l *Leveled) Debug(msg string, keysAndValues ...any) {
	fields(l.logger.Debug(), keysAndValues).Msg(msg)
}

func (l *Leveled) Warn(msg string, keysAndValues ...any) {
	fields(l.logger.Warn(), keysAndValues).Msg(msg)
}

func fields(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	if len(kv)%2 == 1 {
		e = e.Interface("extra", kv[len(kv)-1])
	}
	return e
}
