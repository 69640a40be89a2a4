package sink

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes a line per payload instead of delivering it. It is used in
// development and by dry runs.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, viewer string, payload []byte) error {
	s.logger.Info().
		Str("viewer", viewer).
		Int("bytes", len(payload)).
		Msg("payload")
	return nil
}
