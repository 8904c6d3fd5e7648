package logger

import (
	"io"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// New creates a new zerolog logger writing to w. Supports console/json format,
// level filtering, and optional sampling.
func New(w io.Writer, logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if logFormat != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(w).
		Level(zerolog.Level(logLevel)).
		With().
		Timestamp().
		Logger()

	if logSampler {
		logger = logger.Sample(&zerolog.BasicSampler{N: 5})
	}
	return logger
}

// Chain wraps l for the chain modules, which log through cosmossdk.io/log.
func Chain(l zerolog.Logger) log.Logger {
	return log.NewCustomLogger(l)
}
