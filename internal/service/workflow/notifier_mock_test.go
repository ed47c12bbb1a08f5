package workflow

import (
	"context"
	"sync"

	"github.com/netroncoso/presupuestador/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, targets []domain.NotificationTarget) error

	calls struct {
		Notify []struct {
			Ctx     context.Context
			Targets []domain.NotificationTarget
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, targets []domain.NotificationTarget) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Targets []domain.NotificationTarget
	}{Ctx: ctx, Targets: targets}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, targets)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx     context.Context
	Targets []domain.NotificationTarget
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
