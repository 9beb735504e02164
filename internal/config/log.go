package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
)

// LogConfig controls diagnostic logging. Logs never go to the protocol
// output.
type LogConfig struct {
	// Level is a zerolog level name.
	Level string

	// File receives the log; empty means stderr.
	File string

	// Pretty switches to the human readable console writer.
	Pretty bool
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// Validate checks the level name.
func (l *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	return nil
}
