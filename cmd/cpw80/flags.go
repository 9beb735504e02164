// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

var (
	// Engine options
	hashMB      = flag.Int("hash", 64, "Transposition table size in MB (1-1024)")
	ponder      = flag.Bool("ponder", true, "Allow pondering when the GUI asks for it")
	variantName = flag.String("variant", variant.Default, "Starting variant")
	moveTime    = flag.Duration("movetime", 5*time.Second, "Default time per move")
	maxDepth    = flag.Int("depth", chess.MaxDepth, "Maximum search depth")
	contempt    = flag.Int("contempt", 0, "Score of a draw from the engine's side, in centipawns")

	// Logging
	logLevel  = flag.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	logFile   = flag.String("log-file", "", "Append logs to this file (default: stderr)")
	logPretty = flag.Bool("pretty", false, "Human readable log lines")

	// WebSocket bridge
	serve   = flag.Bool("serve", false, "Serve the engine over WebSocket instead of stdin/stdout")
	listen  = flag.String("listen", "localhost:8080", "Address for -serve")
	wsPath  = flag.String("path", "/engine", "WebSocket endpoint for -serve")
	origins = flag.String("origins", "", "Comma-separated origins allowed to connect (\"*\" for any)")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyEngineFlags(cfg)
	applySearchFlags(cfg)
	applyLogFlags(cfg)
	applyServerFlags(cfg)
}

func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.HashMB = *hashMB
	cfg.Engine.Ponder = *ponder
	cfg.Engine.Variant = strings.ToLower(*variantName)
}

func applySearchFlags(cfg *config.Config) {
	cfg.Search.MoveTime = *moveTime
	cfg.Search.MaxDepth = *maxDepth
	cfg.Search.Contempt = *contempt
}

func applyLogFlags(cfg *config.Config) {
	cfg.Log.Level = *logLevel
	cfg.Log.File = *logFile
	cfg.Log.Pretty = *logPretty
}

func applyServerFlags(cfg *config.Config) {
	cfg.Server.Listen = *listen
	cfg.Server.Path = *wsPath
	cfg.Server.AllowedOrigins = nil
	for _, o := range strings.Split(*origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, o)
		}
	}
}
