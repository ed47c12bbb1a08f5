package dashboard

import (
	"context"
	"sync"

	"github.com/netroncoso/presupuestador/internal/domain"
)

var _ budgetRepo = &budgetRepoMock{}

type budgetRepoMock struct {
	CountByStatusFunc func(ctx context.Context) (map[domain.Status]int, error)

	calls struct {
		CountByStatus []struct {
			Ctx context.Context
		}
	}
	lockCountByStatus sync.RWMutex
}

func (mock *budgetRepoMock) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	if mock.CountByStatusFunc == nil {
		panic("budgetRepoMock.CountByStatusFunc: method is nil but budgetRepo.CountByStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCountByStatus.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, callInfo)
	mock.lockCountByStatus.Unlock()
	return mock.CountByStatusFunc(ctx)
}

func (mock *budgetRepoMock) CountByStatusCalls() []struct {
	Ctx context.Context
} {
	mock.lockCountByStatus.RLock()
	calls := mock.calls.CountByStatus
	mock.lockCountByStatus.RUnlock()
	return calls
}
