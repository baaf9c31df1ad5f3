package application

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/middleware"
	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
	"github.com/jwalitptl/pawcare-api/pkg/httputil"
)

type Service interface {
	CreateGroomingApplication(ctx context.Context, actor uuid.UUID, req *model.CreateGroomingRequest) (*model.ApplicationReceipt, error)
	CreateBoardingApplication(ctx context.Context, actor uuid.UUID, req *model.CreateBoardingRequest) (*model.ApplicationReceipt, error)
	CreateTransitApplication(ctx context.Context, actor uuid.UUID, req *model.CreateTransitRequest) (*model.ApplicationReceipt, error)
	GetGroomingApplication(ctx context.Context, id uuid.UUID) (*model.GroomingApplicationView, error)
	GetBoardingApplication(ctx context.Context, id uuid.UUID) (*model.BoardingApplicationView, error)
	GetTransitApplication(ctx context.Context, id uuid.UUID) (*model.TransitApplication, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	{
		applications.POST("/grooming", h.CreateGrooming)
		applications.POST("/boarding", h.CreateBoarding)
		applications.POST("/transit", h.CreateTransit)
		applications.GET("/grooming/:id", h.GetGrooming)
		applications.GET("/boarding/:id", h.GetBoarding)
		applications.GET("/transit/:id", h.GetTransit)
	}
}

func actor(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Unauthorized(nil))
	}
	return id, ok
}

func respondCreated(c *gin.Context, receipt *model.ApplicationReceipt, err error) {
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httputil.Response{
		Code:    httputil.CodeSuccess,
		Message: "success",
		Data:    receipt,
	})
}

func (h *Handler) CreateGrooming(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var req model.CreateGroomingRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	receipt, err := h.service.CreateGroomingApplication(c.Request.Context(), user, &req)
	respondCreated(c, receipt, err)
}

func (h *Handler) CreateBoarding(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var req model.CreateBoardingRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	receipt, err := h.service.CreateBoardingApplication(c.Request.Context(), user, &req)
	respondCreated(c, receipt, err)
}

func (h *Handler) CreateTransit(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var req model.CreateTransitRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	receipt, err := h.service.CreateTransitApplication(c.Request.Context(), user, &req)
	respondCreated(c, receipt, err)
}

func (h *Handler) GetGrooming(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.service.GetGroomingApplication(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, app)
}

func (h *Handler) GetBoarding(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.service.GetBoardingApplication(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, app)
}

func (h *Handler) GetTransit(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.service.GetTransitApplication(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, app)
}
