package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/internal/repository/mocks"
	"github.com/jwalitptl/pawcare-api/internal/service/fee"
	apperrors "github.com/jwalitptl/pawcare-api/pkg/errors"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
	"github.com/jwalitptl/pawcare-api/pkg/metrics"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, event model.ActivityEvent) {
	m.Called(ctx, event)
}

type fixture struct {
	bookings     *mocks.BookingRepository
	transactions *mocks.TransactionRepository
	branches     *mocks.BranchRepository
	fees         *mocks.FeeRepository
	notifier     *mockNotifier
	metrics      *metrics.Metrics
	svc          *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:     new(mocks.BookingRepository),
		transactions: new(mocks.TransactionRepository),
		branches:     new(mocks.BranchRepository),
		fees:         new(mocks.FeeRepository),
		notifier:     new(mockNotifier),
		metrics:      metrics.New("test"),
	}
	catalog := fee.NewCatalog(f.fees, fee.CacheConfig{TTL: time.Minute, CleanupInterval: time.Minute})
	f.svc = NewService(f.bookings, f.transactions, f.branches, catalog, f.notifier, logger.Nop(), f.metrics)
	return f
}

func pendingBooking(t model.ApplicationType) *model.Booking {
	return &model.Booking{
		Base:            model.Base{ID: uuid.New()},
		UserID:          uuid.New(),
		PetID:           uuid.New(),
		BranchID:        uuid.New(),
		ApplicationID:   uuid.New(),
		ApplicationType: t,
		Status:          model.BookingStatusPending,
		Payable:         500,
	}
}

func description(want string) interface{} {
	return mock.MatchedBy(func(e model.ActivityEvent) bool { return e.Description == want })
}

func TestUpdateBookingStatusDoneCreatesTransaction(t *testing.T) {
	f := newFixture()
	b1 := pendingBooking(model.ApplicationTypeBoarding)
	staff := uuid.New()
	boardingFee := &model.Fee{Base: model.Base{ID: uuid.New()}, Title: "boarding", Fee: 500}

	updated := *b1
	updated.Status = model.BookingStatusDone
	updated.StaffID = &staff

	f.bookings.On("UpdateStatusByApplication", mock.Anything, b1.ApplicationID, model.BookingStatusDone, staff).Return(&updated, nil)
	f.fees.On("FindByTitle", mock.Anything, model.FeeCatalogService, "boarding").Return(boardingFee, nil)

	var txn *model.ServiceTransaction
	f.transactions.On("Create", mock.Anything, mock.AnythingOfType("*model.ServiceTransaction")).
		Run(func(args mock.Arguments) { txn = args.Get(1).(*model.ServiceTransaction) }).
		Return(nil)
	f.notifier.On("Notify", mock.Anything, description("boarding completed")).Return()

	err := f.svc.UpdateBookingStatus(context.Background(), b1.ApplicationID, model.BookingStatusDone, staff)
	require.NoError(t, err)

	require.NotNil(t, txn)
	assert.Equal(t, staff, txn.StaffID)
	assert.Equal(t, b1.UserID, txn.CustomerID)
	assert.Equal(t, b1.PetID, txn.PetID)
	assert.Equal(t, b1.ID, txn.BookingID)
	require.NotNil(t, txn.ServiceID)
	assert.Equal(t, boardingFee.ID, *txn.ServiceID)
	assert.Equal(t, 0.0, txn.Payment)
	assert.Equal(t, "", txn.Feedback)

	f.notifier.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingTransitions.WithLabelValues("boarding", "done")))
}

func TestUpdateBookingStatusDoneTwiceDuplicatesTransaction(t *testing.T) {
	f := newFixture()
	b1 := pendingBooking(model.ApplicationTypeGrooming)
	staff := uuid.New()

	done := *b1
	done.Status = model.BookingStatusDone
	f.bookings.On("UpdateStatusByApplication", mock.Anything, b1.ApplicationID, model.BookingStatusDone, staff).Return(&done, nil)
	f.fees.On("FindByTitle", mock.Anything, model.FeeCatalogService, "grooming").
		Return(&model.Fee{Base: model.Base{ID: uuid.New()}, Title: "grooming"}, nil)
	f.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return()

	require.NoError(t, f.svc.UpdateBookingStatus(context.Background(), b1.ApplicationID, model.BookingStatusDone, staff))
	require.NoError(t, f.svc.UpdateBookingStatus(context.Background(), b1.ApplicationID, model.BookingStatusDone, staff))

	// a repeated done is not guarded, so each call records a transaction
	f.transactions.AssertNumberOfCalls(t, "Create", 2)
}

func TestUpdateBookingStatusNotFoundWritesNothing(t *testing.T) {
	f := newFixture()
	appRef := uuid.New()

	f.bookings.On("UpdateStatusByApplication", mock.Anything, appRef, model.BookingStatusDone, mock.Anything).
		Return(nil, apperrors.NotFound("booking", nil))

	err := f.svc.UpdateBookingStatus(context.Background(), appRef, model.BookingStatusDone, uuid.New())

	assert.True(t, apperrors.IsNotFound(err))
	f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestUpdateBookingStatusEmitsPerStatus(t *testing.T) {
	tests := []struct {
		status model.BookingStatus
		event  string
	}{
		{model.BookingStatusConfirmed, "transit confirmed"},
		{model.BookingStatusDeclined, "transit declined"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := newFixture()
			b := pendingBooking(model.ApplicationTypeTransit)
			staff := uuid.New()
			updated := *b
			updated.Status = tt.status

			f.bookings.On("UpdateStatusByApplication", mock.Anything, b.ApplicationID, tt.status, staff).Return(&updated, nil)
			f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e model.ActivityEvent) bool {
				return e.Description == tt.event && e.UserID == staff
			})).Return()

			require.NoError(t, f.svc.UpdateBookingStatus(context.Background(), b.ApplicationID, tt.status, staff))
			f.notifier.AssertExpectations(t)
			f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateBookingStatusPendingHasNoSideEffects(t *testing.T) {
	f := newFixture()
	b := pendingBooking(model.ApplicationTypeGrooming)
	staff := uuid.New()
	f.bookings.On("UpdateStatusByApplication", mock.Anything, b.ApplicationID, model.BookingStatusPending, staff).Return(b, nil)

	require.NoError(t, f.svc.UpdateBookingStatus(context.Background(), b.ApplicationID, model.BookingStatusPending, staff))
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestUpdateBookingStatusSideEffectFailuresAreSwallowed(t *testing.T) {
	f := newFixture()
	b := pendingBooking(model.ApplicationTypeTransit)
	staff := uuid.New()
	done := *b
	done.Status = model.BookingStatusDone

	f.bookings.On("UpdateStatusByApplication", mock.Anything, b.ApplicationID, model.BookingStatusDone, staff).Return(&done, nil)
	f.fees.On("FindByTitle", mock.Anything, model.FeeCatalogService, "transit").Return(nil, apperrors.NotFound("fee", nil))

	var txn *model.ServiceTransaction
	f.transactions.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { txn = args.Get(1).(*model.ServiceTransaction) }).
		Return(errors.New("insert failed"))
	f.notifier.On("Notify", mock.Anything, description("transit completed")).Return()

	err := f.svc.UpdateBookingStatus(context.Background(), b.ApplicationID, model.BookingStatusDone, staff)
	require.NoError(t, err)

	require.NotNil(t, txn)
	assert.Nil(t, txn.ServiceID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingSideEffects.WithLabelValues("service_transaction", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.FeeCatalogFallbacks.WithLabelValues("transit")))
	f.notifier.AssertExpectations(t)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	err := f.svc.UpdateBookingStatus(context.Background(), uuid.New(), model.BookingStatus("Done"), uuid.New())
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
	f.bookings.AssertNotCalled(t, "UpdateStatusByApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExtendBookingCompounds(t *testing.T) {
	f := newFixture()
	b := pendingBooking(model.ApplicationTypeBoarding)

	extended := *b
	two := 2
	extended.Extension = &two
	extended.Payable = 1000

	f.bookings.On("Get", mock.Anything, b.ID).Return(b, nil).Once()
	f.bookings.On("UpdateExtension", mock.Anything, b.ID, 2, 1000.0).Return(nil).Once()
	f.bookings.On("Get", mock.Anything, b.ID).Return(&extended, nil).Once()
	f.bookings.On("UpdateExtension", mock.Anything, b.ID, 3, 3000.0).Return(nil).Once()

	got, err := f.svc.ExtendBooking(context.Background(), b.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Payable)
	require.NotNil(t, got.Extension)
	assert.Equal(t, 2, *got.Extension)

	got, err = f.svc.ExtendBooking(context.Background(), b.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got.Payable)
	assert.Equal(t, 3, *got.Extension)

	f.bookings.AssertExpectations(t)
}

func TestExtendBookingValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ExtendBooking(context.Background(), uuid.New(), 0)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))

	missing := uuid.New()
	f.bookings.On("Get", mock.Anything, missing).Return(nil, apperrors.NotFound("booking", nil))
	_, err = f.svc.ExtendBooking(context.Background(), missing, 2)
	assert.True(t, apperrors.IsNotFound(err))
	f.bookings.AssertNotCalled(t, "UpdateExtension", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListBookingsDefaultsToPending(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, &model.BookingFilters{Status: model.BookingStatusPending}).
		Return([]*model.BookingView{{Booking: *pendingBooking(model.ApplicationTypeGrooming)}}, nil)

	views, err := f.svc.ListBookingsByStatus(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestListUserBookingsNewestFirst(t *testing.T) {
	f := newFixture()
	user := uuid.New()
	f.bookings.On("List", mock.Anything, &model.BookingFilters{
		Status:      model.BookingStatusConfirmed,
		UserID:      user,
		NewestFirst: true,
	}).Return([]*model.BookingView{}, nil)

	_, err := f.svc.ListUserBookings(context.Background(), user, model.BookingStatusConfirmed)
	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}
