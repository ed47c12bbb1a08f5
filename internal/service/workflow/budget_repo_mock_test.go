package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

var _ budgetRepo = &budgetRepoMock{}

type budgetRepoMock struct {
	GetCurrentForUpdateFunc     func(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	GetByIDFunc                 func(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	UpdateStateFunc             func(ctx context.Context, id uuid.UUID, u domain.StateUpdate) (domain.Budget, error)
	ReleaseStaleFunc            func(ctx context.Context, cutoff time.Time) (int64, error)
	ExternalReferenceExistsFunc func(ctx context.Context, ref string, exceptID uuid.UUID) (bool, error)
	ListCurrentFunc             func(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error)
	ListLineageFunc             func(ctx context.Context, lineageID uuid.UUID) ([]domain.Budget, error)

	calls struct {
		GetCurrentForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateState []struct {
			Ctx context.Context
			ID  uuid.UUID
			U   domain.StateUpdate
		}
		ReleaseStale []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		ExternalReferenceExists []struct {
			Ctx      context.Context
			Ref      string
			ExceptID uuid.UUID
		}
		ListCurrent []struct {
			Ctx    context.Context
			Filter domain.BudgetFilter
		}
		ListLineage []struct {
			Ctx       context.Context
			LineageID uuid.UUID
		}
	}
	lockGetCurrentForUpdate     sync.RWMutex
	lockGetByID                 sync.RWMutex
	lockUpdateState             sync.RWMutex
	lockReleaseStale            sync.RWMutex
	lockExternalReferenceExists sync.RWMutex
	lockListCurrent             sync.RWMutex
	lockListLineage             sync.RWMutex
}

func (mock *budgetRepoMock) GetCurrentForUpdate(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	if mock.GetCurrentForUpdateFunc == nil {
		panic("budgetRepoMock.GetCurrentForUpdateFunc: method is nil but budgetRepo.GetCurrentForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetCurrentForUpdate.Lock()
	mock.calls.GetCurrentForUpdate = append(mock.calls.GetCurrentForUpdate, callInfo)
	mock.lockGetCurrentForUpdate.Unlock()
	return mock.GetCurrentForUpdateFunc(ctx, id)
}

func (mock *budgetRepoMock) GetCurrentForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetCurrentForUpdate.RLock()
	calls := mock.calls.GetCurrentForUpdate
	mock.lockGetCurrentForUpdate.RUnlock()
	return calls
}

func (mock *budgetRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	if mock.GetByIDFunc == nil {
		panic("budgetRepoMock.GetByIDFunc: method is nil but budgetRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *budgetRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *budgetRepoMock) UpdateState(ctx context.Context, id uuid.UUID, u domain.StateUpdate) (domain.Budget, error) {
	if mock.UpdateStateFunc == nil {
		panic("budgetRepoMock.UpdateStateFunc: method is nil but budgetRepo.UpdateState was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		U   domain.StateUpdate
	}{Ctx: ctx, ID: id, U: u}
	mock.lockUpdateState.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, callInfo)
	mock.lockUpdateState.Unlock()
	return mock.UpdateStateFunc(ctx, id, u)
}

func (mock *budgetRepoMock) UpdateStateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	U   domain.StateUpdate
} {
	mock.lockUpdateState.RLock()
	calls := mock.calls.UpdateState
	mock.lockUpdateState.RUnlock()
	return calls
}

func (mock *budgetRepoMock) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if mock.ReleaseStaleFunc == nil {
		panic("budgetRepoMock.ReleaseStaleFunc: method is nil but budgetRepo.ReleaseStale was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockReleaseStale.Lock()
	mock.calls.ReleaseStale = append(mock.calls.ReleaseStale, callInfo)
	mock.lockReleaseStale.Unlock()
	return mock.ReleaseStaleFunc(ctx, cutoff)
}

func (mock *budgetRepoMock) ReleaseStaleCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockReleaseStale.RLock()
	calls := mock.calls.ReleaseStale
	mock.lockReleaseStale.RUnlock()
	return calls
}

func (mock *budgetRepoMock) ExternalReferenceExists(ctx context.Context, ref string, exceptID uuid.UUID) (bool, error) {
	if mock.ExternalReferenceExistsFunc == nil {
		panic("budgetRepoMock.ExternalReferenceExistsFunc: method is nil but budgetRepo.ExternalReferenceExists was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Ref      string
		ExceptID uuid.UUID
	}{Ctx: ctx, Ref: ref, ExceptID: exceptID}
	mock.lockExternalReferenceExists.Lock()
	mock.calls.ExternalReferenceExists = append(mock.calls.ExternalReferenceExists, callInfo)
	mock.lockExternalReferenceExists.Unlock()
	return mock.ExternalReferenceExistsFunc(ctx, ref, exceptID)
}

func (mock *budgetRepoMock) ExternalReferenceExistsCalls() []struct {
	Ctx      context.Context
	Ref      string
	ExceptID uuid.UUID
} {
	mock.lockExternalReferenceExists.RLock()
	calls := mock.calls.ExternalReferenceExists
	mock.lockExternalReferenceExists.RUnlock()
	return calls
}

func (mock *budgetRepoMock) ListCurrent(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error) {
	if mock.ListCurrentFunc == nil {
		panic("budgetRepoMock.ListCurrentFunc: method is nil but budgetRepo.ListCurrent was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.BudgetFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListCurrent.Lock()
	mock.calls.ListCurrent = append(mock.calls.ListCurrent, callInfo)
	mock.lockListCurrent.Unlock()
	return mock.ListCurrentFunc(ctx, filter)
}

func (mock *budgetRepoMock) ListCurrentCalls() []struct {
	Ctx    context.Context
	Filter domain.BudgetFilter
} {
	mock.lockListCurrent.RLock()
	calls := mock.calls.ListCurrent
	mock.lockListCurrent.RUnlock()
	return calls
}

func (mock *budgetRepoMock) ListLineage(ctx context.Context, lineageID uuid.UUID) ([]domain.Budget, error) {
	if mock.ListLineageFunc == nil {
		panic("budgetRepoMock.ListLineageFunc: method is nil but budgetRepo.ListLineage was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LineageID uuid.UUID
	}{Ctx: ctx, LineageID: lineageID}
	mock.lockListLineage.Lock()
	mock.calls.ListLineage = append(mock.calls.ListLineage, callInfo)
	mock.lockListLineage.Unlock()
	return mock.ListLineageFunc(ctx, lineageID)
}

func (mock *budgetRepoMock) ListLineageCalls() []struct {
	Ctx       context.Context
	LineageID uuid.UUID
} {
	mock.lockListLineage.RLock()
	calls := mock.calls.ListLineage
	mock.lockListLineage.RUnlock()
	return calls
}
