// Command reconcile recomputes every profile's view and like counters from
// the interaction ledger and exits.
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
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(&cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize application")
	}

	start := time.Now()
	corrected, runErr := app.Interactions.Reconcile(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Close(closeCtx); err != nil {
		log.WithError(err).Warn("error closing application")
	}

	entry := log.WithField("corrected", corrected).WithField("took", time.Since(start).String())
	if runErr != nil {
		entry.WithError(runErr).Error("reconcile failed")
		os.Exit(1)
	}
	entry.Info("reconcile finished")
}
