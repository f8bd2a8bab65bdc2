package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andyballingall/cargo-fmt/internal/app"
)

func main() {
	// Create context that cancels on SIGINT (Ctrl+C) or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := app.Run(ctx, os.Args, os.Stdout, os.Stderr, nil)
	stop()
	_ = os.Stdout.Sync()

	//nolint:gocritic // os.Exit is intentional
	os.Exit(code)
}
