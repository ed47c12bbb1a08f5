package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/netroncoso/presupuestador/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	AppendFunc        func(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	ListByLineageFunc func(ctx context.Context, lineageID uuid.UUID) ([]domain.AuditEntry, error)
	ListByActorFunc   func(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.AuditEntry, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		ListByLineage []struct {
			Ctx       context.Context
			LineageID uuid.UUID
		}
		ListByActor []struct {
			Ctx     context.Context
			ActorID uuid.UUID
			Limit   int
		}
	}
	lockAppend        sync.RWMutex
	lockListByLineage sync.RWMutex
	lockListByActor   sync.RWMutex
}

func (mock *auditRepoMock) Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	if mock.AppendFunc == nil {
		panic("auditRepoMock.AppendFunc: method is nil but auditRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *auditRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *auditRepoMock) ListByLineage(ctx context.Context, lineageID uuid.UUID) ([]domain.AuditEntry, error) {
	if mock.ListByLineageFunc == nil {
		panic("auditRepoMock.ListByLineageFunc: method is nil but auditRepo.ListByLineage was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LineageID uuid.UUID
	}{Ctx: ctx, LineageID: lineageID}
	mock.lockListByLineage.Lock()
	mock.calls.ListByLineage = append(mock.calls.ListByLineage, callInfo)
	mock.lockListByLineage.Unlock()
	return mock.ListByLineageFunc(ctx, lineageID)
}

func (mock *auditRepoMock) ListByLineageCalls() []struct {
	Ctx       context.Context
	LineageID uuid.UUID
} {
	mock.lockListByLineage.RLock()
	calls := mock.calls.ListByLineage
	mock.lockListByLineage.RUnlock()
	return calls
}

func (mock *auditRepoMock) ListByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	if mock.ListByActorFunc == nil {
		panic("auditRepoMock.ListByActorFunc: method is nil but auditRepo.ListByActor was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ActorID uuid.UUID
		Limit   int
	}{Ctx: ctx, ActorID: actorID, Limit: limit}
	mock.lockListByActor.Lock()
	mock.calls.ListByActor = append(mock.calls.ListByActor, callInfo)
	mock.lockListByActor.Unlock()
	return mock.ListByActorFunc(ctx, actorID, limit)
}

func (mock *auditRepoMock) ListByActorCalls() []struct {
	Ctx     context.Context
	ActorID uuid.UUID
	Limit   int
} {
	mock.lockListByActor.RLock()
	calls := mock.calls.ListByActor
	mock.lockListByActor.RUnlock()
	return calls
}
