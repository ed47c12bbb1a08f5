package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// AutoReleaseStaleClaims returns every claim older than the configured claim
// timeout to its pending queue and reports how many budgets were released.
// Rows locked by an in-flight transition are left for the next run, so the
// sweep is safe to run at any time and running it twice changes nothing more.
func (s *Service) AutoReleaseStaleClaims(ctx context.Context) (int64, error) {
	now := s.now()
	cutoff := now.Add(-s.cfg.ClaimTimeout)

	n, err := s.budgets.ReleaseStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("auto release: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	s.log.InfoContext(ctx, "stale claims released",
		slog.Int64("count", n),
		slog.Time("cutoff", cutoff),
	)
	s.events.Publish(context.WithoutCancel(ctx), domain.StateChange{
		Action: domain.ActionAutoRelease,
		Count:  n,
		At:     now,
	})
	return n, nil
}
