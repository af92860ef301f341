package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/plantuml-generator/cmd/plantuml-generator/commands"
	"git.home.luguber.info/inful/plantuml-generator/internal/config"
	ferrors "git.home.luguber.info/inful/plantuml-generator/internal/foundation/errors"
)

func main() {
	// dotenv files must be loaded before kong reads env-bound flags
	if _, err := config.LoadEnvFiles(""); err != nil {
		slog.Warn("Failed to load .env files", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cli, err := commands.Execute(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli != nil && cli.Verbose, slog.Default()).HandleError(err)
	}
}
