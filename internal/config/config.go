// Package config holds the settings of an engine instance.
package config

import (
	"io"
	"os"
)

// Config holds all engine configuration. It is built once by the command
// line front end and then read by the session and the server.
type Config struct {
	Engine *EngineConfig
	Search *SearchConfig
	Log    *LogConfig
	Server *ServerConfig

	// Output is where protocol lines are written.
	Output io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Engine: NewEngineConfig(),
		Search: NewSearchConfig(),
		Log:    NewLogConfig(),
		Server: NewServerConfig(),
		Output: os.Stdout,
	}
}

// SetOutput sets the protocol output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.Output = w
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}
