package config

import (
	"fmt"
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
)

// SearchConfig holds the default thinking limits.
type SearchConfig struct {
	// MoveTime is used when the GUI gives no clock.
	MoveTime time.Duration

	// MaxDepth caps every search
	MaxDepth int

	// Contempt in centipawns; positive values avoid draws.
	Contempt int
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		MoveTime: 5 * time.Second,
		MaxDepth: chess.MaxDepth,
	}
}

// Validate checks the limits are usable.
func (s *SearchConfig) Validate() error {
	if s.MoveTime <= 0 {
		return fmt.Errorf("move time %v must be positive: %w", s.MoveTime, errors.ErrInvalidConfig)
	}
	if s.MaxDepth < 1 || s.MaxDepth > chess.MaxDepth {
		return fmt.Errorf("max depth %d outside 1..%d: %w", s.MaxDepth, chess.MaxDepth, errors.ErrInvalidConfig)
	}
	return nil
}
