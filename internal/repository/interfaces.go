package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
)

// All repository interfaces in one file
type (
	// BookingRepository persists bookings together with their applications.
	BookingRepository interface {
		// CreateWithApplication writes the application and the booking in one transaction.
		CreateWithApplication(ctx context.Context, app *model.Application, booking *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		// UpdateStatusByApplication sets status and staff on the booking referencing applicationID.
		UpdateStatusByApplication(ctx context.Context, applicationID uuid.UUID, status model.BookingStatus, staffID uuid.UUID) (*model.Booking, error)
		UpdateExtension(ctx context.Context, id uuid.UUID, extension int, payable float64) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.BookingView, error)
	}

	ApplicationRepository interface {
		GetGrooming(ctx context.Context, id uuid.UUID) (*model.GroomingApplicationView, error)
		GetBoarding(ctx context.Context, id uuid.UUID) (*model.BoardingApplicationView, error)
		GetTransit(ctx context.Context, id uuid.UUID) (*model.TransitApplication, error)
	}

	FeeRepository interface {
		FindByTitle(ctx context.Context, catalog model.FeeCatalog, title string) (*model.Fee, error)
		Get(ctx context.Context, catalog model.FeeCatalog, id uuid.UUID) (*model.Fee, error)
		List(ctx context.Context, catalog model.FeeCatalog, title string) ([]*model.Fee, error)
		ListByIDs(ctx context.Context, catalog model.FeeCatalog, ids []uuid.UUID) ([]*model.Fee, error)
		Update(ctx context.Context, catalog model.FeeCatalog, fee *model.Fee) error
	}

	TransactionRepository interface {
		Create(ctx context.Context, txn *model.ServiceTransaction) error
		List(ctx context.Context) ([]*model.ServiceTransactionView, error)
	}

	ScheduleRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
	}

	CageRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Cage, error)
	}

	PetRepository interface {
		// FindByUser returns the single pet owned by userID.
		FindByUser(ctx context.Context, userID uuid.UUID) (*model.Pet, error)
		// FindOwned returns pet id only when userID owns it.
		FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Pet, error)
	}

	BranchRepository interface {
		List(ctx context.Context) ([]*model.Branch, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		// ClaimPending marks up to limit deliverable events as processing and returns them.
		// Pending events, retries that are due, and processing claims last touched
		// before staleBefore are deliverable.
		ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]*model.OutboxEvent, error)
		// UpdateStatus records a delivery outcome. Retry and failed outcomes count
		// against the event's retry budget.
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string, retryAt *time.Time) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
