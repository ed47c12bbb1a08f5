package workflow

import (
	"context"
	"sync"

	"github.com/netroncoso/presupuestador/internal/domain"
)

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(ctx context.Context, change domain.StateChange)

	calls struct {
		Publish []struct {
			Ctx    context.Context
			Change domain.StateChange
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, change domain.StateChange) {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Change domain.StateChange
	}{Ctx: ctx, Change: change}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(ctx, change)
}

func (mock *publisherMock) PublishCalls() []struct {
	Ctx    context.Context
	Change domain.StateChange
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
