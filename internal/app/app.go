package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/netroncoso/presupuestador/internal/adapter/postgres"
	"github.com/netroncoso/presupuestador/internal/adapter/postgres/audit"
	"github.com/netroncoso/presupuestador/internal/adapter/postgres/budget"
	"github.com/netroncoso/presupuestador/internal/adapter/postgres/notification"
	"github.com/netroncoso/presupuestador/internal/config"
	"github.com/netroncoso/presupuestador/internal/event"
	"github.com/netroncoso/presupuestador/internal/scheduler"
	"github.com/netroncoso/presupuestador/internal/service/dashboard"
	notificationsvc "github.com/netroncoso/presupuestador/internal/service/notification"
	"github.com/netroncoso/presupuestador/internal/service/versioning"
	"github.com/netroncoso/presupuestador/internal/service/workflow"
	"github.com/netroncoso/presupuestador/internal/transport/rest"
)

// Services is the wired service layer over one connection pool.
type Services struct {
	Workflow      *workflow.Service
	Versioning    *versioning.Service
	Notifications *notificationsvc.Service
	Dashboard     *dashboard.Service
	Events        *event.Bus
}

// NewServices builds repositories and services over pool and subscribes the
// read models to the event bus.
func NewServices(logger *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) (*Services, error) {
	txm := postgres.NewTxManager(pool)

	budgets := budget.New(pool)
	audits := audit.New(pool)
	notifications := notification.New(pool)

	bus := event.NewBus(logger)
	notifier := notificationsvc.NewService(logger, notifications, txm)

	wf, err := workflow.NewService(logger, budgets, audits, notifier, bus, txm, cfg.Workflow)
	if err != nil {
		return nil, err
	}

	dash := dashboard.NewService(logger, budgets, cfg.Cache)
	bus.Subscribe("dashboard", dash.HandleStateChange)

	return &Services{
		Workflow:      wf,
		Versioning:    versioning.NewService(logger, budgets, audits, bus, txm),
		Notifications: notifier,
		Dashboard:     dash,
		Events:        bus,
	}, nil
}

// Run is the application entry point. It loads configuration, connects to
// the database, optionally applies migrations and then runs the release
// scheduler next to the operational HTTP server until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	svcs, err := NewServices(logger, pool, cfg)
	if err != nil {
		return err
	}

	runner := scheduler.NewRunner(logger, svcs.Workflow, cfg.Workflow.ReleaseInterval)
	health := rest.NewHealthHandler(pool, runner, BuildVersion(), cfg.Workflow.ReleaseInterval)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(logger, health),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runner.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
