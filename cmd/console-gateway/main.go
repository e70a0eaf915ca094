package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-console-gateway/api/swagger"
	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/handler"
	"github.com/noah-isme/sma-console-gateway/internal/middleware"
	"github.com/noah-isme/sma-console-gateway/internal/repository"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	"github.com/noah-isme/sma-console-gateway/pkg/config"
	"github.com/noah-isme/sma-console-gateway/pkg/jobs"
	"github.com/noah-isme/sma-console-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-console-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-console-gateway/pkg/middleware/requestid"
)

// @title School Console Gateway
// @version 1.0.0
// @description Backend-for-frontend for the school admin console.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("gateway stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	infra, err := openInfra(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer infra.Close()

	router, queue, err := buildRouter(ctx, cfg, logr, infra)
	if err != nil {
		return err
	}
	queue.Start(ctx)
	defer queue.Stop()

	// No write timeout: notification streams stay open for the session.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("store_driver", cfg.OverrideStore.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildRouter(ctx context.Context, cfg *config.Config, logr *zap.Logger, infra *infra) (*gin.Engine, *jobs.Queue, error) {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	client := backend.New(backend.Options{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		Logger:   logr.Named("backend"),
		Observer: metricsSvc,
		OnUnauthorized: func(ctx context.Context) {
			logr.Debug("backend rejected session token")
		},
	})

	lookup := service.NewNameLookup()
	normalizer := service.NewNormalizer(lookup)

	blobs, err := infra.blobRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store := service.NewOverrideStore(blobs, cfg.OverrideStore.Key, metricsSvc, logr.Named("override_store"))

	authSvc := service.NewAuthService(client, validate)
	catalogSvc := service.NewCatalogService(client, normalizer, lookup, validate, logr)
	classSvc := service.NewClassService(client, normalizer, validate, logr)
	setupSvc := service.NewSetupService(service.SetupServiceParams{
		Classes:   classSvc,
		Catalog:   catalogSvc,
		Store:     store,
		Mirror:    service.NewFirstOfferingMirror(classSvc),
		Validator: validate,
		Logger:    logr,
	})
	inflight := service.NewInFlight()
	enrollmentSvc := service.NewEnrollmentService(setupSvc, classSvc, inflight, logr)
	assignmentSvc := service.NewAssignmentService(client, normalizer, inflight, validate, logr)
	attendanceSvc := service.NewAttendanceService(client, normalizer, validate)
	notificationSvc := service.NewNotificationService(client, normalizer, metricsSvc, logr.Named("notifications"))
	exportSvc := service.NewExportService(setupSvc, nil, nil, logr)

	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(infra.cacheClient(), logr),
		metricsSvc,
		cfg.Dashboard.CacheTTL,
		logr,
		cfg.Dashboard.CacheEnabled && infra.redis != nil,
	)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Backend:  client,
		Cache:    cacheSvc,
		CacheTTL: cfg.Dashboard.CacheTTL,
		Logger:   logr,
	})

	invalidations := jobs.NewQueue("dashboard-invalidate", func(ctx context.Context, _ jobs.Job) error {
		return dashboardSvc.Invalidate(ctx)
	}, jobs.QueueConfig{MaxRetries: 3, RetryDelay: 2 * time.Second, Logger: logr})
	invalidate := func(context.Context) {
		if _, err := invalidations.Enqueue(jobs.Job{Key: "dashboard"}); err != nil {
			logr.Warn("dashboard invalidation not queued", zap.Error(err))
		}
	}

	policy := service.NewAccessPolicy()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))
	}
	r.Use(middleware.WithResponseMeta())

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, catalogSvc, policy),
		Catalog:       handler.NewCatalogHandler(catalogSvc, setupSvc),
		Users:         handler.NewUserHandler(catalogSvc),
		Classes:       handler.NewClassHandler(classSvc, setupSvc),
		Setups:        handler.NewSetupHandler(setupSvc, enrollmentSvc),
		Students:      handler.NewStudentHandler(setupSvc),
		Assignments:   handler.NewAssignmentHandler(assignmentSvc),
		Grades:        handler.NewGradeHandler(assignmentSvc),
		Attendance:    handler.NewAttendanceHandler(attendanceSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Exports:       handler.NewExportHandler(exportSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc, cfg.CORS.AllowedOrigins, logr.Named("notifications")),
		Metrics:       handler.NewMetricsHandler(metricsSvc, infra.readinessChecks()...),
	}, handler.RouteOptions{
		Prefix:           cfg.APIPrefix,
		Session:          middleware.Session(authSvc),
		Policy:           policy,
		Invalidate:       invalidate,
		MetricsEnabled:   cfg.Metrics.Enabled,
		WebsocketEnabled: cfg.Notifications.WebsocketEnabled,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r, invalidations, nil
}
