package fee

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/pkg/httputil"
)

// Catalog is the fee catalog surface exposed over HTTP.
type Catalog interface {
	ListServiceFees(ctx context.Context, title string) ([]*model.Fee, error)
	ListGroomingServices(ctx context.Context, title string) ([]*model.Fee, error)
	ListVaccinationServices(ctx context.Context, title string) ([]*model.Fee, error)
	UpdateServiceFee(ctx context.Context, id uuid.UUID, req *model.UpdateFeeRequest) (*model.Fee, error)
}

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("/fees", h.list(h.catalog.ListServiceFees))
		services.GET("/grooming/fees", h.list(h.catalog.ListGroomingServices))
		services.GET("/vaccination/fees", h.list(h.catalog.ListVaccinationServices))
		services.PUT("/fees/:id", h.UpdateServiceFee)
	}
}

// list serves one catalog, optionally narrowed by ?title=.
func (h *Handler) list(fn func(ctx context.Context, title string) ([]*model.Fee, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		fees, err := fn(c.Request.Context(), c.Query("title"))
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, fees)
	}
}

func (h *Handler) UpdateServiceFee(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateFeeRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	fee, err := h.catalog.UpdateServiceFee(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, fee)
}
