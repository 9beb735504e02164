// cpw80 is a chess engine for 10x8 variants. It speaks the console, XBoard
// and UCI protocols on stdin/stdout, or serves them over WebSocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/logging"
	"github.com/mage-of-maple/CPW80-Engine/internal/protocol"
	"github.com/mage-of-maple/CPW80-Engine/internal/server"
	"github.com/mage-of-maple/CPW80-Engine/internal/session"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("CPW-80 version %s\n", protocol.Version)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if *serve {
		err = server.New(ctx, cfg, log).ListenAndServe(ctx)
	} else {
		err = runStdio(ctx, cfg, log)
	}
	interrupted := ctx.Err() != nil
	stop()

	failed := err != nil && !interrupted
	if failed {
		log.Error().Err(err).Msg("engine stopped")
	}
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", cerr)
	}
	if failed {
		os.Exit(1)
	}
}

// runStdio plays one engine session over stdin and stdout.
func runStdio(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	s, err := session.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	a := protocol.New(s, cfg.Output, log)
	a.Welcome()
	log.Debug().Str("variant", s.Variant().Name).Int("hash_mb", cfg.Engine.HashMB).Msg("engine ready")
	return a.Run(ctx, os.Stdin)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: cpw80 [options]\n\n")
	fmt.Fprintf(os.Stderr, "CPW-80, a chess engine for 80-square variants.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nVariants:\n")
	for _, name := range variant.Names() {
		fmt.Fprintf(os.Stderr, "  %s\n", name)
	}
}
