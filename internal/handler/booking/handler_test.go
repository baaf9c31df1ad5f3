package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/pawcare-api/internal/middleware"
	"github.com/jwalitptl/pawcare-api/internal/model"
	apperrors "github.com/jwalitptl/pawcare-api/pkg/errors"
	"github.com/jwalitptl/pawcare-api/pkg/httputil"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateBookingStatus(ctx context.Context, applicationID uuid.UUID, status model.BookingStatus, staff uuid.UUID) error {
	return m.Called(ctx, applicationID, status, staff).Error(0)
}

func (m *mockService) ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int) (*model.Booking, error) {
	args := m.Called(ctx, bookingID, days)
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListBookingsByStatus(ctx context.Context, status model.BookingStatus) ([]*model.BookingView, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]*model.BookingView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListUserBookings(ctx context.Context, user uuid.UUID, status model.BookingStatus) ([]*model.BookingView, error) {
	args := m.Called(ctx, user, status)
	if v := args.Get(0); v != nil {
		return v.([]*model.BookingView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListTransactions(ctx context.Context) ([]*model.ServiceTransactionView, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*model.ServiceTransactionView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*model.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

func setup(svc Service, user uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(
		middleware.ErrorHandler(),
		middleware.Validation(middleware.DefaultValidationConfig()),
		func(c *gin.Context) {
			c.Set(middleware.ContextUserID, user)
			c.Next()
		},
	)
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestUpdateStatus(t *testing.T) {
	staff := uuid.New()
	application := uuid.New()

	svc := new(mockService)
	svc.On("UpdateBookingStatus", mock.Anything, application, model.BookingStatusDone, staff).Return(nil)

	w := do(setup(svc, staff), http.MethodPut, "/api/v1/bookings/status",
		fmt.Sprintf(`{"booking":%q,"status":"done"}`, application))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, httputil.CodeSuccess, decode(t, w).Code)
	svc.AssertExpectations(t)
}

func TestUpdateStatusNotFound(t *testing.T) {
	staff := uuid.New()
	application := uuid.New()

	svc := new(mockService)
	svc.On("UpdateBookingStatus", mock.Anything, application, model.BookingStatusConfirmed, staff).
		Return(fmt.Errorf("update booking status: %w", apperrors.NotFound("booking", nil)))

	w := do(setup(svc, staff), http.MethodPut, "/api/v1/bookings/status",
		fmt.Sprintf(`{"booking":%q,"status":"confirmed"}`, application))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, httputil.CodeNotFound, resp.Code)
	assert.Equal(t, "booking not found", resp.Message)
}

func TestUpdateStatusInternalErrorIsGeneric(t *testing.T) {
	staff := uuid.New()
	application := uuid.New()

	svc := new(mockService)
	svc.On("UpdateBookingStatus", mock.Anything, application, model.BookingStatusDeclined, staff).
		Return(fmt.Errorf("pq: connection reset"))

	w := do(setup(svc, staff), http.MethodPut, "/api/v1/bookings/status",
		fmt.Sprintf(`{"booking":%q,"status":"declined"}`, application))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, httputil.CodeInternal, resp.Code)
	assert.Equal(t, httputil.MessageSomethingWentWrong, resp.Message)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := new(mockService)

	w := do(setup(svc, uuid.New()), http.MethodPut, "/api/v1/bookings/status",
		fmt.Sprintf(`{"booking":%q,"status":"cancelled"}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httputil.CodeInvalidRequest, decode(t, w).Code)
	svc.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusMalformedBody(t *testing.T) {
	svc := new(mockService)

	w := do(setup(svc, uuid.New()), http.MethodPut, "/api/v1/bookings/status", `{"booking":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtend(t *testing.T) {
	id := uuid.New()
	extension := 2
	booking := &model.Booking{Payable: 1000, Extension: &extension}
	booking.ID = id

	svc := new(mockService)
	svc.On("ExtendBooking", mock.Anything, id, 2).Return(booking, nil)

	w := do(setup(svc, uuid.New()), http.MethodPut, "/api/v1/bookings/extension",
		fmt.Sprintf(`{"booking":%q,"days":2}`, id))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data model.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1000.0, body.Data.Payable)
	require.NotNil(t, body.Data.Extension)
	assert.Equal(t, 2, *body.Data.Extension)
}

func TestExtendRejectsNonPositiveDays(t *testing.T) {
	svc := new(mockService)

	w := do(setup(svc, uuid.New()), http.MethodPut, "/api/v1/bookings/extension",
		fmt.Sprintf(`{"booking":%q,"days":0}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ExtendBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestListBookingsPassesStatus(t *testing.T) {
	svc := new(mockService)
	svc.On("ListBookingsByStatus", mock.Anything, model.BookingStatusConfirmed).
		Return([]*model.BookingView{{}}, nil)

	w := do(setup(svc, uuid.New()), http.MethodGet, "/api/v1/bookings?status=confirmed", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListMyBookingsRenamesTypes(t *testing.T) {
	user := uuid.New()
	views := []*model.BookingView{
		{Booking: model.Booking{ApplicationType: model.ApplicationTypeTransit}},
		{Booking: model.Booking{ApplicationType: model.ApplicationTypeGrooming}},
		{Booking: model.Booking{ApplicationType: model.ApplicationTypeBoarding}},
	}

	svc := new(mockService)
	svc.On("ListUserBookings", mock.Anything, user, model.BookingStatus("")).Return(views, nil)

	w := do(setup(svc, user), http.MethodGet, "/api/v1/bookings/me", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []struct {
			ApplicationType string `json:"applicationType"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, "Home Service", body.Data[0].ApplicationType)
	assert.Equal(t, "Hair Cut", body.Data[1].ApplicationType)
	assert.Equal(t, "boarding", body.Data[2].ApplicationType)
}

func TestListTransactionsAndBranches(t *testing.T) {
	svc := new(mockService)
	svc.On("ListTransactions", mock.Anything).Return([]*model.ServiceTransactionView{{Payment: 0}}, nil)
	svc.On("ListBranches", mock.Anything).Return(nil, fmt.Errorf("boom"))

	r := setup(svc, uuid.New())

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/transactions", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/api/v1/branches", "").Code)
}
