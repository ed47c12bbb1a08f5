// Package scheduler runs the periodic release of stale claims.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Releaser returns stale claims to their queues.
type Releaser interface {
	AutoReleaseStaleClaims(ctx context.Context) (int64, error)
}

// Sweep is the outcome of the latest sweep. A zero At means no sweep ran yet.
type Sweep struct {
	At       time.Time
	Released int64
	Err      error
}

// Runner calls the releaser once at start and then on every tick.
type Runner struct {
	releaser Releaser
	interval time.Duration
	log      *slog.Logger

	mu   sync.Mutex
	last Sweep
}

// NewRunner creates a Runner ticking every interval.
func NewRunner(log *slog.Logger, releaser Releaser, interval time.Duration) *Runner {
	return &Runner{
		releaser: releaser,
		interval: interval,
		log:      log.With("component", "release_scheduler"),
	}
}

// Run blocks until ctx is cancelled. A failed sweep is logged and retried
// on the next tick. Run returns nil on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	r.log.InfoContext(ctx, "release scheduler started", slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			r.log.InfoContext(ctx, "release scheduler stopped")
			return nil
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// RunOnce performs a single sweep and reports how many budgets it released.
func (r *Runner) RunOnce(ctx context.Context) (int64, error) {
	n, err := r.releaser.AutoReleaseStaleClaims(ctx)

	r.mu.Lock()
	r.last = Sweep{At: time.Now(), Released: n, Err: err}
	r.mu.Unlock()

	return n, err
}

// LastSweep returns the outcome of the most recent sweep.
func (r *Runner) LastSweep() Sweep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Runner) tick(ctx context.Context) {
	n, err := r.RunOnce(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.log.ErrorContext(ctx, "auto release failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		r.log.DebugContext(ctx, "auto release tick", slog.Int64("released", n))
	}
}
