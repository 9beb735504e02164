// Package logging builds the zerolog logger shared by an engine process.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
)

// New returns a logger configured by cfg and a function that releases the
// log file, if one was opened.
func New(cfg *config.LogConfig) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrapf(errors.ErrInvalidConfig, "log level %q", cfg.Level)
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrap(err, "open log file")
		}
		w, closer = f, f.Close
	}
	return build(w, level, cfg.Pretty), closer, nil
}

func build(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
