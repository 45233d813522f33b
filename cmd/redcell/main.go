// Package main is the entry point for the redcell CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"redcell/internal/cli"
	"redcell/internal/config"
	"redcell/internal/engine"
	"redcell/internal/logging"
	"redcell/internal/manager"
	"redcell/internal/telemetry"
	"redcell/internal/tui"
	"redcell/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env if present, for development setups.
	if err := godotenv.Load(); err != nil && os.Getenv("DEBUG") == "true" {
		fmt.Fprintf(os.Stderr, "no .env file loaded: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return cli.ExitRuntimeError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := version.Get()
	shutdownTelemetry, err := telemetry.InitializeFromEnv(ctx, info.Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize telemetry: %v\n", err)
		return cli.ExitRuntimeError
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
		}
	}()

	newOps := func(level logging.Level) (cli.Ops, func(), error) {
		log := logging.New(level, os.Stdout)
		if err := log.WithFile(cfg.LogDir); err != nil {
			log.Debug("file logging disabled: %s", err)
		}

		client, err := engine.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot reach the container engine: %w", err)
		}

		m := manager.New(cfg, client, tui.NewConsole(log))
		closer := func() {
			if err := m.Close(); err != nil {
				log.Debug("manager close: %s", err)
			}
			if err := client.Close(); err != nil {
				log.Debug("engine close: %s", err)
			}
			if err := log.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "log close: %v\n", err)
			}
		}
		return m, closer, nil
	}

	return cli.Execute(ctx, os.Args[1:], newOps, info.String(), os.Stderr)
}
