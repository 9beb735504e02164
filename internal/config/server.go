package config

// ServerConfig holds settings for the WebSocket bridge.
type ServerConfig struct {
	// Listen is the TCP address to serve on.
	Listen string

	// Path is the WebSocket endpoint.
	Path string

	// AllowedOrigins lists the origins accepted for cross-site requests.
	AllowedOrigins []string
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Listen: "localhost:8080",
		Path:   "/engine",
	}
}
