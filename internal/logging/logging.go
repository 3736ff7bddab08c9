// Package logging configures the global zerolog logger for the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output. Pretty output goes through
// zerolog's console writer; otherwise records are JSON lines on stderr.
func Setup(level string, pretty bool) error {
	logger, err := New(os.Stderr, level, pretty)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(logger.GetLevel())
	log.Logger = logger
	return nil
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
