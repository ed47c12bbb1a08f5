// Package event delivers committed workflow state changes to in-process
// subscribers such as read-model caches.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/netroncoso/presupuestador/internal/domain"
)

// Handler reacts to one committed state change.
type Handler func(ctx context.Context, change domain.StateChange) error

type subscription struct {
	name    string
	handler Handler
}

// Bus fans state changes out to subscribers synchronously, in subscription
// order. A failing or panicking subscriber is logged and does not affect the
// others or the publisher. A nil *Bus drops every event.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
	log  *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log.With("component", "event_bus")}
}

// Subscribe registers handler under name. The name only appears in logs.
func (b *Bus) Subscribe(name string, handler Handler) {
	if b == nil || handler == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, subscription{name: name, handler: handler})
	b.mu.Unlock()
}

// Publish delivers change to every subscriber. Call it only after the
// change has committed.
func (b *Bus) Publish(ctx context.Context, change domain.StateChange) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := b.deliver(ctx, s, change); err != nil {
			b.log.WarnContext(ctx, "event subscriber failed",
				slog.String("subscriber", s.name),
				slog.String("action", string(change.Action)),
				slog.String("budget_id", change.BudgetID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, s subscription, change domain.StateChange) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.handler(ctx, change)
}
