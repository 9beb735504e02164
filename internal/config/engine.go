package config

import (
	"fmt"

	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

// Hash size bounds in megabytes, as announced to UCI GUIs.
const (
	MinHashMB = 1
	MaxHashMB = 1024
)

// EngineConfig holds the settings a GUI can also change at run time.
type EngineConfig struct {
	// HashMB is the memory budget for the caches.
	HashMB int

	// Ponder lets the engine think on the opponent's time.
	Ponder bool

	// Variant is the game played after start-up and "new".
	Variant string
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		HashMB:  64,
		Ponder:  true,
		Variant: variant.Default,
	}
}

// Validate checks the hash size and variant name.
func (e *EngineConfig) Validate() error {
	if e.HashMB < MinHashMB || e.HashMB > MaxHashMB {
		return fmt.Errorf("hash %d MB outside %d..%d: %w",
			e.HashMB, MinHashMB, MaxHashMB, errors.ErrInvalidConfig)
	}
	if _, err := variant.ByName(e.Variant); err != nil {
		return fmt.Errorf("variant %q: %w", e.Variant, errors.ErrInvalidConfig)
	}
	return nil
}
