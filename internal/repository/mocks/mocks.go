// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
)

var (
	_ repository.BookingRepository     = (*BookingRepository)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepository)(nil)
	_ repository.FeeRepository         = (*FeeRepository)(nil)
	_ repository.TransactionRepository = (*TransactionRepository)(nil)
	_ repository.ScheduleRepository    = (*ScheduleRepository)(nil)
	_ repository.CageRepository        = (*CageRepository)(nil)
	_ repository.PetRepository         = (*PetRepository)(nil)
	_ repository.BranchRepository      = (*BranchRepository)(nil)
	_ repository.OutboxRepository      = (*OutboxRepository)(nil)
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) CreateWithApplication(ctx context.Context, app *model.Application, booking *model.Booking) error {
	args := m.Called(ctx, app, booking)
	return args.Error(0)
}

func (m *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepository) UpdateStatusByApplication(ctx context.Context, applicationID uuid.UUID, status model.BookingStatus, staffID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, applicationID, status, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingRepository) UpdateExtension(ctx context.Context, id uuid.UUID, extension int, payable float64) error {
	args := m.Called(ctx, id, extension, payable)
	return args.Error(0)
}

func (m *BookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.BookingView, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BookingView), args.Error(1)
}

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) GetGrooming(ctx context.Context, id uuid.UUID) (*model.GroomingApplicationView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroomingApplicationView), args.Error(1)
}

func (m *ApplicationRepository) GetBoarding(ctx context.Context, id uuid.UUID) (*model.BoardingApplicationView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardingApplicationView), args.Error(1)
}

func (m *ApplicationRepository) GetTransit(ctx context.Context, id uuid.UUID) (*model.TransitApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransitApplication), args.Error(1)
}

type FeeRepository struct {
	mock.Mock
}

func (m *FeeRepository) FindByTitle(ctx context.Context, catalog model.FeeCatalog, title string) (*model.Fee, error) {
	args := m.Called(ctx, catalog, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fee), args.Error(1)
}

func (m *FeeRepository) Get(ctx context.Context, catalog model.FeeCatalog, id uuid.UUID) (*model.Fee, error) {
	args := m.Called(ctx, catalog, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fee), args.Error(1)
}

func (m *FeeRepository) List(ctx context.Context, catalog model.FeeCatalog, title string) ([]*model.Fee, error) {
	args := m.Called(ctx, catalog, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Fee), args.Error(1)
}

func (m *FeeRepository) ListByIDs(ctx context.Context, catalog model.FeeCatalog, ids []uuid.UUID) ([]*model.Fee, error) {
	args := m.Called(ctx, catalog, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Fee), args.Error(1)
}

func (m *FeeRepository) Update(ctx context.Context, catalog model.FeeCatalog, fee *model.Fee) error {
	args := m.Called(ctx, catalog, fee)
	return args.Error(0)
}

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, txn *model.ServiceTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *TransactionRepository) List(ctx context.Context) ([]*model.ServiceTransactionView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ServiceTransactionView), args.Error(1)
}

type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

type CageRepository struct {
	mock.Mock
}

func (m *CageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Cage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cage), args.Error(1)
}

type PetRepository struct {
	mock.Mock
}

func (m *PetRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Pet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *PetRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Pet, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

type BranchRepository struct {
	mock.Mock
}

func (m *BranchRepository) List(ctx context.Context) ([]*model.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Branch), args.Error(1)
}

type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *OutboxRepository) ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]*model.OutboxEvent, error) {
	args := m.Called(ctx, limit, staleBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OutboxEvent), args.Error(1)
}

func (m *OutboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string, retryAt *time.Time) error {
	args := m.Called(ctx, id, status, errMsg, retryAt)
	return args.Error(0)
}

func (m *OutboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
