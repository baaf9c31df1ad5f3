package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/pawcare-api/internal/handler/prometheus"
	"github.com/jwalitptl/pawcare-api/internal/middleware"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	RequestTimeout   time.Duration
	AllowedOrigins   []string
	MaxBodyBytes     int64
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	health    Handler
	protected []Handler
}

// NewRouter builds the engine with the shared middleware chain. Health
// routes are public; every handler in protected sits behind authentication.
func NewRouter(
	config RouterConfig,
	log *logger.Logger,
	auth *middleware.AuthMiddleware,
	metrics *prometheus.Handler,
	health Handler,
	protected ...Handler,
) *Router {
	engine := gin.New()

	timeout := middleware.DefaultTimeoutConfig()
	if config.RequestTimeout > 0 {
		timeout.Duration = config.RequestTimeout
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(log),
		metrics.Middleware(),
		middleware.CORS(config.AllowedOrigins),
		middleware.SizeLimit(middleware.SizeLimitConfig{MaxBodyBytes: config.MaxBodyBytes}),
		middleware.ErrorHandler(),
		middleware.Validation(middleware.DefaultValidationConfig()),
		middleware.Timeout(timeout),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return &Router{
		engine:    engine,
		auth:      auth,
		health:    health,
		protected: protected,
	}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.health.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
