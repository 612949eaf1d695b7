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

	_ "github.com/noah-isme/terms-api/api/swagger"
	"github.com/noah-isme/terms-api/internal/handler"
	"github.com/noah-isme/terms-api/internal/middleware"
	"github.com/noah-isme/terms-api/internal/repository"
	"github.com/noah-isme/terms-api/internal/serializer"
	"github.com/noah-isme/terms-api/internal/service"
	"github.com/noah-isme/terms-api/pkg/cache"
	"github.com/noah-isme/terms-api/pkg/config"
	"github.com/noah-isme/terms-api/pkg/database"
	"github.com/noah-isme/terms-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/terms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/terms-api/pkg/middleware/requestid"
)

// @title Terms API
// @version 1.0.0
// @description Read-only access to academic terms
// @BasePath /api/v1
// @schemes http https

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	cacheRepo := repository.NewCacheRepository(nil, "terms", logr)
	if cfg.Terms.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("term cache disabled, redis unavailable", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, "terms", logr)
		}
	}
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Terms.CacheTTL, logr, cfg.Terms.CacheEnabled)
	// entries written by a previous release may have a different shape
	if err := cacheSvc.Invalidate(context.Background(), "*"); err != nil {
		logr.Warn("failed to purge term cache", zap.Error(err))
	}

	termRepo := repository.NewTermRepository(db, serializer.NewTermSerializer(cfg.BaseURL), metrics)
	termSvc := service.NewTermService(service.TermServiceParams{
		Repo:      termRepo,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validator.New(),
		Logger:    logr,
		CacheTTL:  cfg.Terms.CacheTTL,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	ops := handler.NewMetricsHandler(metrics, db)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	if metrics != nil {
		r.GET("/metrics", ops.Prometheus)
		r.GET("/metrics/snapshot", ops.Snapshot)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.NewTermHandler(termSvc).Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
