package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository"
	"github.com/jwalitptl/pawcare-api/internal/service/activity"
	"github.com/jwalitptl/pawcare-api/internal/service/fee"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
	"github.com/jwalitptl/pawcare-api/pkg/metrics"
)

type Service struct {
	bookings     repository.BookingRepository
	transactions repository.TransactionRepository
	branches     repository.BranchRepository
	catalog      *fee.Catalog
	notifier     activity.Notifier
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(
	bookings repository.BookingRepository,
	transactions repository.TransactionRepository,
	branches repository.BranchRepository,
	catalog *fee.Catalog,
	notifier activity.Notifier,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		bookings:     bookings,
		transactions: transactions,
		branches:     branches,
		catalog:      catalog,
		notifier:     notifier,
		logger:       logger,
		metrics:      metrics,
	}
}

// UpdateBookingStatus moves the booking that references applicationID to
// status and assigns staff to it. Side effects run after the update and
// never fail the call. The prior status is not checked.
func (s *Service) UpdateBookingStatus(ctx context.Context, applicationID uuid.UUID, status model.BookingStatus, staff uuid.UUID) error {
	if !status.Valid() {
		return errors.BadRequest(fmt.Sprintf("invalid booking status %q", status), nil)
	}

	booking, err := s.bookings.UpdateStatusByApplication(ctx, applicationID, status, staff)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.metrics.BookingTransitions.WithLabelValues(string(booking.ApplicationType), string(status)).Inc()
	s.logger.Info("Booking status updated",
		"booking_id", booking.ID.String(),
		"application_type", string(booking.ApplicationType),
		"status", string(status),
		"staff", staff.String())

	switch status {
	case model.BookingStatusDone:
		s.recordTransaction(ctx, booking, staff)
		s.notifier.Notify(ctx, activity.Event(staff, fmt.Sprintf("%s completed", booking.ApplicationType)))
	case model.BookingStatusDeclined:
		s.notifier.Notify(ctx, activity.Event(staff, fmt.Sprintf("%s declined", booking.ApplicationType)))
	case model.BookingStatusConfirmed:
		s.notifier.Notify(ctx, activity.Event(staff, fmt.Sprintf("%s confirmed", booking.ApplicationType)))
	}

	return nil
}

// recordTransaction writes the service transaction for a completed booking.
// Failures are logged and counted only.
func (s *Service) recordTransaction(ctx context.Context, booking *model.Booking, staff uuid.UUID) {
	txn := &model.ServiceTransaction{
		StaffID:    staff,
		CustomerID: booking.UserID,
		PetID:      booking.PetID,
		BookingID:  booking.ID,
		Feedback:   "",
		Payment:    0,
	}

	service, err := s.catalog.FindFeeByType(ctx, booking.ApplicationType)
	switch {
	case err == nil:
		serviceID := service.ID
		txn.ServiceID = &serviceID
	case errors.IsNotFound(err):
		s.metrics.FeeCatalogFallbacks.WithLabelValues(string(booking.ApplicationType)).Inc()
		s.logger.Warn("No catalog entry for completed service", "application_type", string(booking.ApplicationType))
	default:
		s.logger.Error(err, "Failed to resolve service fee", "booking_id", booking.ID.String())
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		s.metrics.BookingSideEffects.WithLabelValues("service_transaction", "error").Inc()
		s.logger.Error(err, "Failed to create service transaction", "booking_id", booking.ID.String())
		return
	}
	s.metrics.BookingSideEffects.WithLabelValues("service_transaction", "success").Inc()
}

// ExtendBooking records a stay extension of days and multiplies the current
// payable by it. Repeated extensions compound.
func (s *Service) ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int) (*model.Booking, error) {
	if days <= 0 {
		return nil, errors.BadRequest("days must be a positive number", nil)
	}

	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	payable := float64(days) * booking.Payable
	if err := s.bookings.UpdateExtension(ctx, bookingID, days, payable); err != nil {
		return nil, fmt.Errorf("failed to extend booking: %w", err)
	}

	booking.Extension = &days
	booking.Payable = payable
	return booking, nil
}

// ListBookingsByStatus returns enriched bookings in status, pending by default.
func (s *Service) ListBookingsByStatus(ctx context.Context, status model.BookingStatus) ([]*model.BookingView, error) {
	if status == "" {
		status = model.BookingStatusPending
	}
	if !status.Valid() {
		return nil, errors.BadRequest(fmt.Sprintf("invalid booking status %q", status), nil)
	}

	bookings, err := s.bookings.List(ctx, &model.BookingFilters{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListUserBookings returns user's bookings in status, newest first.
func (s *Service) ListUserBookings(ctx context.Context, user uuid.UUID, status model.BookingStatus) ([]*model.BookingView, error) {
	if status == "" {
		status = model.BookingStatusPending
	}
	if !status.Valid() {
		return nil, errors.BadRequest(fmt.Sprintf("invalid booking status %q", status), nil)
	}

	bookings, err := s.bookings.List(ctx, &model.BookingFilters{
		Status:      status,
		UserID:      user,
		NewestFirst: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]*model.ServiceTransactionView, error) {
	txns, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list service transactions: %w", err)
	}
	return txns, nil
}

func (s *Service) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}
