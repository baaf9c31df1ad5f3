package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/pawcare-api/config"
	applicationHandler "github.com/jwalitptl/pawcare-api/internal/handler/application"
	bookingHandler "github.com/jwalitptl/pawcare-api/internal/handler/booking"
	feeHandler "github.com/jwalitptl/pawcare-api/internal/handler/fee"
	"github.com/jwalitptl/pawcare-api/internal/handler/health"
	"github.com/jwalitptl/pawcare-api/internal/handler/prometheus"
	"github.com/jwalitptl/pawcare-api/internal/middleware"
	"github.com/jwalitptl/pawcare-api/internal/repository/postgres"
	"github.com/jwalitptl/pawcare-api/internal/router"
	"github.com/jwalitptl/pawcare-api/internal/service/activity"
	applicationService "github.com/jwalitptl/pawcare-api/internal/service/application"
	bookingService "github.com/jwalitptl/pawcare-api/internal/service/booking"
	"github.com/jwalitptl/pawcare-api/internal/service/fee"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
	"github.com/jwalitptl/pawcare-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		JSON:       cfg.Log.JSON,
	})
	log.Logger = l.ZL
	gin.SetMode(gin.ReleaseMode)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(cfg.Monitoring.Namespace, "api", registry)

	repos := postgres.NewRepositories(db)

	catalog := fee.NewCatalog(repos.Fees, fee.CacheConfig{
		TTL:             cfg.FeeCatalog.CacheTTL,
		CleanupInterval: cfg.FeeCatalog.CleanupInterval,
	})
	aggregator := fee.NewAggregator(catalog, l, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := activity.NewOutboxNotifier(repos.Outbox, activity.Config{
		QueueSize:    cfg.Activity.QueueSize,
		WriteTimeout: cfg.Activity.WriteTimeout,
	}, l, m)
	notifier.Start(ctx)

	applicationSvc := applicationService.NewService(applicationService.Dependencies{
		Bookings:     repos.Bookings,
		Applications: repos.Applications,
		Schedules:    repos.Schedules,
		Cages:        repos.Cages,
		Pets:         repos.Pets,
	}, aggregator, notifier, l)
	bookingSvc := bookingService.NewService(repos.Bookings, repos.Transactions, repos.Branches, catalog, notifier, l, m)

	promHandler := prometheus.New(cfg.Monitoring.Namespace, registry)
	healthHandler := health.NewHandler(map[string]health.Check{
		"database": db.PingContext,
	}, promHandler.Handler())

	r := router.NewRouter(
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			RequestTimeout:   cfg.Server.RequestTimeout,
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		},
		l,
		middleware.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer),
		promHandler,
		healthHandler,
		applicationHandler.NewHandler(applicationSvc),
		bookingHandler.NewHandler(bookingSvc),
		feeHandler.NewHandler(catalog),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		l.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error(err, "server forced to shutdown")
	}

	// flush queued activity events before the pool closes
	cancel()
	notifier.Wait()

	l.Info("server exited properly")
}
