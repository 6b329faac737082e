// cmd/finreview/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "finreview/internal"
	"finreview/internal/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create and initialize the application
	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		util.GetLogger().Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.View.Mount(ctx); err != nil {
		application.Logger.Error("Initial load failed", "error", err)
	}

	// Read intents until stdin closes or a signal arrives
	if err := run(ctx, application.View, os.Stdin, os.Stdout); err != nil {
		application.Logger.Error("Session ended with error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger.Error("Application shutdown failed", "error", err)
		os.Exit(1)
	}
}
