package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewJSONLogger builds a zerolog logger writing one JSON object per line,
// for runs whose output is consumed by other tools.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// KeyValueLogger adapts a zerolog.Logger to the key/value logging interface
// used by the planner packages.
type KeyValueLogger struct {
	logger zerolog.Logger
}

func NewKeyValueLogger(logger zerolog.Logger) *KeyValueLogger {
	return &KeyValueLogger{logger: logger}
}

func (l *KeyValueLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(toFields(keysAndValues)).Msg(msg)
}

func (l *KeyValueLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(toFields(keysAndValues)).Msg(msg)
}

func (l *KeyValueLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(toFields(keysAndValues)).Msg(msg)
}

// toFields drops pairs whose key is not a string, and a trailing key with
// no value.
func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
