package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithHash sets the cache budget in megabytes.
func (b *ConfigBuilder) WithHash(megabytes int) *ConfigBuilder {
	b.cfg.Engine.HashMB = megabytes
	return b
}

// WithPonder sets the pondering preference.
func (b *ConfigBuilder) WithPonder(enabled bool) *ConfigBuilder {
	b.cfg.Engine.Ponder = enabled
	return b
}

// WithVariant sets the start-up variant.
func (b *ConfigBuilder) WithVariant(name string) *ConfigBuilder {
	b.cfg.Engine.Variant = name
	return b
}

// WithMoveTime sets the default thinking time.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Search.MoveTime = d
	return b
}

// WithMaxDepth caps the search depth.
func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.cfg.Search.MaxDepth = depth
	return b
}

// WithContempt sets the draw contempt in centipawns.
func (b *ConfigBuilder) WithContempt(cp int) *ConfigBuilder {
	b.cfg.Search.Contempt = cp
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithLogFile sends the log to a file.
func (b *ConfigBuilder) WithLogFile(path string) *ConfigBuilder {
	b.cfg.Log.File = path
	return b
}

// WithListen sets the server address.
func (b *ConfigBuilder) WithListen(addr string) *ConfigBuilder {
	b.cfg.Server.Listen = addr
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.Output = w
	return b
}
