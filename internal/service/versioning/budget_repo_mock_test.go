package versioning

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

var _ budgetRepo = &budgetRepoMock{}

type budgetRepoMock struct {
	GetForUpdateFunc  func(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	LockLineageFunc   func(ctx context.Context, lineageID uuid.UUID) error
	MaxVersionFunc    func(ctx context.Context, lineageID uuid.UUID) (int, error)
	ClearCurrentFunc  func(ctx context.Context, lineageID uuid.UUID) error
	InsertVersionFunc func(ctx context.Context, b domain.Budget) (domain.Budget, error)
	CopyLineItemsFunc func(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) error

	calls struct {
		GetForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		LockLineage []struct {
			Ctx       context.Context
			LineageID uuid.UUID
		}
		MaxVersion []struct {
			Ctx       context.Context
			LineageID uuid.UUID
		}
		ClearCurrent []struct {
			Ctx       context.Context
			LineageID uuid.UUID
		}
		InsertVersion []struct {
			Ctx context.Context
			B   domain.Budget
		}
		CopyLineItems []struct {
			Ctx    context.Context
			FromID uuid.UUID
			ToID   uuid.UUID
		}
	}
	lockGetForUpdate  sync.RWMutex
	lockLockLineage   sync.RWMutex
	lockMaxVersion    sync.RWMutex
	lockClearCurrent  sync.RWMutex
	lockInsertVersion sync.RWMutex
	lockCopyLineItems sync.RWMutex
}

func (mock *budgetRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	if mock.GetForUpdateFunc == nil {
		panic("budgetRepoMock.GetForUpdateFunc: method is nil but budgetRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *budgetRepoMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *budgetRepoMock) LockLineage(ctx context.Context, lineageID uuid.UUID) error {
	if mock.LockLineageFunc == nil {
		panic("budgetRepoMock.LockLineageFunc: method is nil but budgetRepo.LockLineage was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LineageID uuid.UUID
	}{Ctx: ctx, LineageID: lineageID}
	mock.lockLockLineage.Lock()
	mock.calls.LockLineage = append(mock.calls.LockLineage, callInfo)
	mock.lockLockLineage.Unlock()
	return mock.LockLineageFunc(ctx, lineageID)
}

func (mock *budgetRepoMock) LockLineageCalls() []struct {
	Ctx       context.Context
	LineageID uuid.UUID
} {
	mock.lockLockLineage.RLock()
	calls := mock.calls.LockLineage
	mock.lockLockLineage.RUnlock()
	return calls
}

func (mock *budgetRepoMock) MaxVersion(ctx context.Context, lineageID uuid.UUID) (int, error) {
	if mock.MaxVersionFunc == nil {
		panic("budgetRepoMock.MaxVersionFunc: method is nil but budgetRepo.MaxVersion was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LineageID uuid.UUID
	}{Ctx: ctx, LineageID: lineageID}
	mock.lockMaxVersion.Lock()
	mock.calls.MaxVersion = append(mock.calls.MaxVersion, callInfo)
	mock.lockMaxVersion.Unlock()
	return mock.MaxVersionFunc(ctx, lineageID)
}

func (mock *budgetRepoMock) MaxVersionCalls() []struct {
	Ctx       context.Context
	LineageID uuid.UUID
} {
	mock.lockMaxVersion.RLock()
	calls := mock.calls.MaxVersion
	mock.lockMaxVersion.RUnlock()
	return calls
}

func (mock *budgetRepoMock) ClearCurrent(ctx context.Context, lineageID uuid.UUID) error {
	if mock.ClearCurrentFunc == nil {
		panic("budgetRepoMock.ClearCurrentFunc: method is nil but budgetRepo.ClearCurrent was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LineageID uuid.UUID
	}{Ctx: ctx, LineageID: lineageID}
	mock.lockClearCurrent.Lock()
	mock.calls.ClearCurrent = append(mock.calls.ClearCurrent, callInfo)
	mock.lockClearCurrent.Unlock()
	return mock.ClearCurrentFunc(ctx, lineageID)
}

func (mock *budgetRepoMock) ClearCurrentCalls() []struct {
	Ctx       context.Context
	LineageID uuid.UUID
} {
	mock.lockClearCurrent.RLock()
	calls := mock.calls.ClearCurrent
	mock.lockClearCurrent.RUnlock()
	return calls
}

func (mock *budgetRepoMock) InsertVersion(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	if mock.InsertVersionFunc == nil {
		panic("budgetRepoMock.InsertVersionFunc: method is nil but budgetRepo.InsertVersion was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   domain.Budget
	}{Ctx: ctx, B: b}
	mock.lockInsertVersion.Lock()
	mock.calls.InsertVersion = append(mock.calls.InsertVersion, callInfo)
	mock.lockInsertVersion.Unlock()
	return mock.InsertVersionFunc(ctx, b)
}

func (mock *budgetRepoMock) InsertVersionCalls() []struct {
	Ctx context.Context
	B   domain.Budget
} {
	mock.lockInsertVersion.RLock()
	calls := mock.calls.InsertVersion
	mock.lockInsertVersion.RUnlock()
	return calls
}

func (mock *budgetRepoMock) CopyLineItems(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) error {
	if mock.CopyLineItemsFunc == nil {
		panic("budgetRepoMock.CopyLineItemsFunc: method is nil but budgetRepo.CopyLineItems was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		FromID uuid.UUID
		ToID   uuid.UUID
	}{Ctx: ctx, FromID: fromID, ToID: toID}
	mock.lockCopyLineItems.Lock()
	mock.calls.CopyLineItems = append(mock.calls.CopyLineItems, callInfo)
	mock.lockCopyLineItems.Unlock()
	return mock.CopyLineItemsFunc(ctx, fromID, toID)
}

func (mock *budgetRepoMock) CopyLineItemsCalls() []struct {
	Ctx    context.Context
	FromID uuid.UUID
	ToID   uuid.UUID
} {
	mock.lockCopyLineItems.RLock()
	calls := mock.calls.CopyLineItems
	mock.lockCopyLineItems.RUnlock()
	return calls
}
