package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/pawcare-api/internal/repository"
)

// Repositories groups every postgres-backed repository over one pool.
type Repositories struct {
	Bookings     repository.BookingRepository
	Applications repository.ApplicationRepository
	Fees         repository.FeeRepository
	Transactions repository.TransactionRepository
	Schedules    repository.ScheduleRepository
	Cages        repository.CageRepository
	Pets         repository.PetRepository
	Branches     repository.BranchRepository
	Outbox       repository.OutboxRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	base := NewBaseRepository(db)
	return &Repositories{
		Bookings:     NewBookingRepository(base),
		Applications: NewApplicationRepository(base),
		Fees:         NewFeeRepository(base),
		Transactions: NewTransactionRepository(base),
		Schedules:    NewScheduleRepository(base),
		Cages:        NewCageRepository(base),
		Pets:         NewPetRepository(base),
		Branches:     NewBranchRepository(base),
		Outbox:       NewOutboxRepository(base),
	}
}
