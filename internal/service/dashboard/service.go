// Package dashboard serves cached read projections of the workflow.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/netroncoso/presupuestador/internal/config"
	"github.com/netroncoso/presupuestador/internal/domain"
)

const statusCountsKey = "status_counts"

type budgetRepo interface {
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

// Service answers dashboard queries from a short-lived cache. Any committed
// state change purges it.
type Service struct {
	budgets budgetRepo
	cache   *expirable.LRU[string, map[domain.Status]int]
	log     *slog.Logger

	// mu guards gen. A purge bumps gen, so a fill that read the store
	// before the purge does not repopulate the cache.
	mu  sync.Mutex
	gen uint64
}

// NewService creates a new dashboard service.
func NewService(log *slog.Logger, budgets budgetRepo, cfg config.CacheConfig) *Service {
	return &Service{
		budgets: budgets,
		cache:   expirable.NewLRU[string, map[domain.Status]int](cfg.DashboardSize, nil, cfg.DashboardTTL),
		log:     log.With("service", "dashboard"),
	}
}

// StatusCounts returns how many current budget versions sit in each status.
// Every status is present, with zero when empty.
func (s *Service) StatusCounts(ctx context.Context) (map[domain.Status]int, error) {
	if cached, ok := s.cache.Get(statusCountsKey); ok {
		return maps.Clone(cached), nil
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	counts, err := s.budgets.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}

	out := make(map[domain.Status]int, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		out[st] = counts[st]
	}

	s.mu.Lock()
	if s.gen == gen {
		s.cache.Add(statusCountsKey, out)
	}
	s.mu.Unlock()
	return maps.Clone(out), nil
}

// HandleStateChange drops cached projections. It is registered on the event
// bus.
func (s *Service) HandleStateChange(ctx context.Context, change domain.StateChange) error {
	s.mu.Lock()
	s.gen++
	n := s.cache.Len()
	s.cache.Purge()
	s.mu.Unlock()

	if n > 0 {
		s.log.DebugContext(ctx, "dashboard cache purged",
			slog.String("action", string(change.Action)),
			slog.Int("entries", n),
		)
	}
	return nil
}
