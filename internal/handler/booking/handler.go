package booking

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/middleware"
	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
	"github.com/jwalitptl/pawcare-api/pkg/httputil"
)

// Service is the booking lifecycle the handler drives.
type Service interface {
	UpdateBookingStatus(ctx context.Context, applicationID uuid.UUID, status model.BookingStatus, staff uuid.UUID) error
	ExtendBooking(ctx context.Context, bookingID uuid.UUID, days int) (*model.Booking, error)
	ListBookingsByStatus(ctx context.Context, status model.BookingStatus) ([]*model.BookingView, error)
	ListUserBookings(ctx context.Context, user uuid.UUID, status model.BookingStatus) ([]*model.BookingView, error)
	ListTransactions(ctx context.Context) ([]*model.ServiceTransactionView, error)
	ListBranches(ctx context.Context) ([]*model.Branch, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/me", h.ListMyBookings)
		bookings.PUT("/status", h.UpdateStatus)
		bookings.PUT("/extension", h.Extend)
	}
	r.GET("/transactions", h.ListTransactions)
	r.GET("/branches", h.ListBranches)
}

// UpdateStatus moves the booking referencing an application to a new status.
// The authenticated caller is recorded as the handling staff member.
func (h *Handler) UpdateStatus(c *gin.Context) {
	staff, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	var req model.UpdateBookingStatusRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateBookingStatus(c.Request.Context(), req.Booking, req.Status, staff); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, nil)
}

func (h *Handler) Extend(c *gin.Context) {
	var req model.UpdateBookingExtensionRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	booking, err := h.service.ExtendBooking(c.Request.Context(), req.Booking, req.Days)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, booking)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookingsByStatus(c.Request.Context(), model.BookingStatus(c.Query("status")))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, bookings)
}

// ListMyBookings lists the caller's bookings with customer-facing type names.
func (h *Handler) ListMyBookings(c *gin.Context) {
	user, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), user, model.BookingStatus(c.Query("status")))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	for _, b := range bookings {
		b.ApplicationType = model.ApplicationType(b.ApplicationType.DisplayName())
	}

	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.service.ListTransactions(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, transactions)
}

func (h *Handler) ListBranches(c *gin.Context) {
	branches, err := h.service.ListBranches(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, branches)
}
