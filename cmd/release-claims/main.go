// Command release-claims runs one auto-release sweep and exits. It returns
// every claim older than workflow.claim_timeout to its pending queue. Use it
// for manual or administrative releases; the server runs the same sweep on a
// ticker.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/netroncoso/presupuestador/internal/adapter/postgres"
	"github.com/netroncoso/presupuestador/internal/app"
	"github.com/netroncoso/presupuestador/internal/config"
	"github.com/netroncoso/presupuestador/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svcs, err := app.NewServices(logger, pool, cfg)
	if err != nil {
		logger.Error("wire services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	runner := scheduler.NewRunner(logger, svcs.Workflow, cfg.Workflow.ReleaseInterval)
	released, err := runner.RunOnce(ctx)
	if err != nil {
		logger.Error("auto release failed",
			slog.String("error", err.Error()),
			slog.Duration("claim_timeout", cfg.Workflow.ClaimTimeout),
		)
		os.Exit(1)
	}

	logger.Info("auto release completed",
		slog.Int64("released", released),
		slog.Duration("claim_timeout", cfg.Workflow.ClaimTimeout),
	)
}
