package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/pawcare-api/internal/model"
	apperrors "github.com/jwalitptl/pawcare-api/pkg/errors"
)

func newMock(t *testing.T) (BaseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBaseRepository(sqlx.NewDb(db, "postgres")), mock
}

var bookingCols = []string{
	"id", "user_id", "staff_id", "branch_id", "pet_id", "application_id",
	"application_type", "extra_services", "status", "extension", "payable",
	"created_at", "updated_at",
}

func TestCreateWithApplicationCommitsBothWrites(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)

	app := model.NewGroomingApplication(&model.GroomingApplication{
		ServiceName: "Full groom",
		ScheduleID:  uuid.New(),
	})
	booking := &model.Booking{
		UserID:        uuid.New(),
		BranchID:      uuid.New(),
		PetID:         uuid.New(),
		ExtraServices: model.UUIDArray{uuid.New()},
		Status:        model.BookingStatusPending,
		Payable:       280,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grooming_applications")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.CreateWithApplication(context.Background(), app, booking)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, app.ID(), booking.ApplicationID)
	assert.Equal(t, model.ApplicationTypeGrooming, booking.ApplicationType)
	assert.False(t, booking.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithApplicationRollsBackOnBookingFailure(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)

	app := model.NewTransitApplication(&model.TransitApplication{Schedule: time.Now()})
	booking := &model.Booking{UserID: uuid.New(), Status: model.BookingStatusPending}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transit_applications")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithApplication(context.Background(), app, booking)
	assert.ErrorContains(t, err, "failed to create booking")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithApplicationRejectsMismatchedPayload(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)

	app := &model.Application{Type: model.ApplicationTypeBoarding, Transit: &model.TransitApplication{}}
	err := repo.CreateWithApplication(context.Background(), app, &model.Booking{})

	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByApplication(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)

	appID, staffID, bookingID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs("done", staffID, sqlmock.AnyArg(), appID).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			bookingID.String(), uuid.New().String(), staffID.String(), uuid.New().String(),
			uuid.New().String(), appID.String(), "boarding", "{}", "done", nil, 500.0, now, now,
		))

	booking, err := repo.UpdateStatusByApplication(context.Background(), appID, model.BookingStatusDone, staffID)
	require.NoError(t, err)

	assert.Equal(t, bookingID, booking.ID)
	assert.Equal(t, model.BookingStatusDone, booking.Status)
	require.NotNil(t, booking.StaffID)
	assert.Equal(t, staffID, *booking.StaffID)
	assert.Equal(t, model.ApplicationTypeBoarding, booking.ApplicationType)
	assert.Nil(t, booking.Extension)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByApplicationNotFound(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings")).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := repo.UpdateStatusByApplication(context.Background(), uuid.New(), model.BookingStatusConfirmed, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExtension(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs(2, 1000.0, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateExtension(context.Background(), id, 2, 1000))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateExtension(context.Background(), uuid.New(), 2, 1000)
	assert.True(t, apperrors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookingsJoinsExtraServices(t *testing.T) {
	base, mock := newMock(t)
	repo := NewBookingRepository(base)

	userID, petID, branchID := uuid.New(), uuid.New(), uuid.New()
	extraA, extraB := uuid.New(), uuid.New()
	now := time.Now()

	cols := append(append([]string{}, bookingCols...),
		"profile_id", "profile_full_name", "profile_contact_email", "profile_contact_number", "profile_address",
		"pet_name", "pet_breed", "pet_gender", "pet_age",
		"branch_name", "branch_address", "branch_mobile_no",
		"staff_profile_id", "staff_full_name", "staff_contact_email",
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b")).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			uuid.New().String(), userID.String(), nil, branchID.String(), petID.String(), uuid.New().String(),
			"grooming", "{"+extraA.String()+","+extraB.String()+"}", "pending", nil, 280.0, now, now,
			uuid.New().String(), "Jane Doe", "jane@example.com", "0917", "Manila",
			"Rex", "Aspin", "male", 3,
			"Main", "Quezon City", "0918",
			nil, nil, nil,
		))
	mock.ExpectQuery(regexp.QuoteMeta("FROM grooming_services WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "fee", "created_at", "updated_at"}).
			AddRow(extraA.String(), "Nail trim", 80.0, now, now))

	views, err := repo.List(context.Background(), &model.BookingFilters{Status: model.BookingStatusPending})
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, model.UUIDArray{extraA, extraB}, v.ExtraServices)
	require.Len(t, v.ExtraServiceFees, 1)
	assert.Equal(t, "Nail trim", v.ExtraServiceFees[0].Title)
	require.NotNil(t, v.Profile)
	assert.Equal(t, "Jane Doe", v.Profile.FullName)
	require.NotNil(t, v.Pet)
	assert.Equal(t, 3, v.Pet.Age)
	require.NotNil(t, v.Branch)
	assert.Equal(t, "Main", v.Branch.Name)
	assert.Nil(t, v.Staff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepository(t *testing.T) {
	base, mock := newMock(t)
	repo := NewFeeRepository(base)
	now := time.Now()
	feeCols := []string{"id", "title", "fee", "created_at", "updated_at"}

	t.Run("find by title", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("FROM service_fees WHERE title = $1")).
			WithArgs("boarding").
			WillReturnRows(sqlmock.NewRows(feeCols).AddRow(id.String(), "boarding", 500.0, now, now))

		fee, err := repo.FindByTitle(context.Background(), model.FeeCatalogService, "boarding")
		require.NoError(t, err)
		assert.Equal(t, id, fee.ID)
		assert.Equal(t, 500.0, fee.Fee)
	})

	t.Run("missing title", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM service_fees WHERE title = $1")).
			WillReturnRows(sqlmock.NewRows(feeCols))

		_, err := repo.FindByTitle(context.Background(), model.FeeCatalogService, "transit")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("unknown catalog", func(t *testing.T) {
		_, err := repo.List(context.Background(), model.FeeCatalog("users; --"), "")
		assert.ErrorContains(t, err, "unknown fee catalog")
	})

	t.Run("list filtered", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM vaccination_services WHERE title = $1 ORDER BY title ASC")).
			WithArgs("rabies").
			WillReturnRows(sqlmock.NewRows(feeCols).AddRow(uuid.New().String(), "rabies", 350.0, now, now))

		fees, err := repo.List(context.Background(), model.FeeCatalogVaccination, "rabies")
		require.NoError(t, err)
		assert.Len(t, fees, 1)
	})

	t.Run("list by no ids skips query", func(t *testing.T) {
		fees, err := repo.ListByIDs(context.Background(), model.FeeCatalogGrooming, nil)
		require.NoError(t, err)
		assert.Empty(t, fees)
	})

	t.Run("update missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE service_fees SET title = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), model.FeeCatalogService, &model.Fee{Base: model.Base{ID: uuid.New()}})
		assert.True(t, apperrors.IsNotFound(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetFindByUserNotFound(t *testing.T) {
	base, mock := newMock(t)
	repo := NewPetRepository(base)

	mock.ExpectQuery(regexp.QuoteMeta("FROM pets")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "age", "gender", "breed", "created_at", "updated_at"}))

	_, err := repo.FindByUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "pet not found")
}

func TestPetFindOwnedScopesToUser(t *testing.T) {
	base, mock := newMock(t)
	repo := NewPetRepository(base)
	petID, userID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND user_id = $2")).
		WithArgs(petID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "age", "gender", "breed", "created_at", "updated_at"}))

	_, err := repo.FindOwned(context.Background(), petID, userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCreateDefaultsDate(t *testing.T) {
	base, mock := newMock(t)
	repo := NewTransactionRepository(base)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO service_transactions")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	txn := &model.ServiceTransaction{StaffID: uuid.New(), CustomerID: uuid.New(), PetID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), txn))
	assert.NotEqual(t, uuid.Nil, txn.ID)
	assert.False(t, txn.Date.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxClaimPending(t *testing.T) {
	base, mock := newMock(t)
	repo := NewOutboxRepository(base)
	now := time.Now()
	staleBefore := now.Add(-5 * time.Minute)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("OR (status = 'processing' AND updated_at < $1)")).
		WithArgs(staleBefore, 25).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "event_type", "payload", "status", "error_message", "retry_count", "retry_at",
			"created_at", "processed_at", "updated_at",
		}).AddRow(id.String(), "ACTIVITY", []byte(`{"description":"boarding done"}`), "processing", nil, 1, nil, now, nil, now))

	events, err := repo.ClaimPending(context.Background(), 25, staleBefore)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, model.OutboxStatusProcessing, events[0].Status)
	assert.Equal(t, 1, events[0].RetryCount)
	assert.JSONEq(t, `{"description":"boarding done"}`, string(events[0].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxClaimPendingIncludesDueRetries(t *testing.T) {
	base, mock := newMock(t)
	repo := NewOutboxRepository(base)

	mock.ExpectQuery(regexp.QuoteMeta("status IN ('pending', 'retry') AND (retry_at IS NULL OR retry_at <= NOW())")).
		WithArgs(sqlmock.AnyArg(), 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	events, err := repo.ClaimPending(context.Background(), 10, time.Now())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxUpdateStatusSchedulesRetry(t *testing.T) {
	base, mock := newMock(t)
	repo := NewOutboxRepository(base)
	id := uuid.New()
	msg := "connection refused"
	retryAt := time.Now().Add(time.Minute)

	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + CASE WHEN $1 IN ('retry', 'failed')")).
		WithArgs(model.OutboxStatusRetry, &msg, id, &retryAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), id, model.OutboxStatusRetry, &msg, &retryAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxCreateRejectsNilPayload(t *testing.T) {
	base, _ := newMock(t)
	repo := NewOutboxRepository(base)

	err := repo.Create(context.Background(), &model.OutboxEvent{EventType: "ACTIVITY"})
	assert.Error(t, err)
}
