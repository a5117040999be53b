package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/config"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/container"
	"github.com/gdugdh24/cofounder-backend/internal/infrastructure/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Logging)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	app, err := container.NewContainer(startCtx, cfg, log)
	cancelStart()
	if err != nil {
		log.WithError(err).Fatal("failed to initialize application")
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			log.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	log.WithField("env", cfg.Server.Env).Info("server started, press Ctrl+C to stop")

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exitCode := 0
	if err := app.Server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown error")
		exitCode = 1
	}
	if err := app.Close(ctx); err != nil {
		log.WithError(err).Error("error closing application")
		exitCode = 1
	}

	log.Info("server exited")
	os.Exit(exitCode)
}
