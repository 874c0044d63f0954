package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/helpfurr/adopt-api/api/swagger"
	"github.com/helpfurr/adopt-api/internal/gateway"
	"github.com/helpfurr/adopt-api/internal/handler"
	"github.com/helpfurr/adopt-api/internal/middleware"
	"github.com/helpfurr/adopt-api/internal/repository"
	"github.com/helpfurr/adopt-api/internal/service"
	"github.com/helpfurr/adopt-api/pkg/cache"
	"github.com/helpfurr/adopt-api/pkg/config"
	"github.com/helpfurr/adopt-api/pkg/logger"
	corsmiddleware "github.com/helpfurr/adopt-api/pkg/middleware/cors"
	reqidmiddleware "github.com/helpfurr/adopt-api/pkg/middleware/requestid"
)

// @title HelpFurr Adopt API
// @version 0.1.0
// @description Submission and moderation workflows for the HelpFurr adoption marketplace
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)

	upstream := gateway.New(cfg.Upstream, logr)

	catalogSvc := service.NewCatalogService(upstream, cacheSvc, metrics, logr)
	submissionSvc := service.NewSubmissionService(upstream, catalogSvc, validator.New(), metrics, logr, cfg.Submission.EmailDomain)
	moderationSvc := service.NewModerationService(upstream, cacheSvc, metrics, logr)
	identitySvc := service.NewIdentityService(cfg.JWT.Secret, upstream, metrics, logr)

	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc, cfg.Submission.MaxImageBytes)
	moderationHandler := handler.NewModerationHandler(moderationSvc, identitySvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/dogs", catalogHandler.List)
	r.POST("/applications", middleware.OptionalJWT(identitySvc), submissionHandler.Submit)
	r.PUT("/listings/:id/approve", middleware.OptionalJWT(identitySvc), moderationHandler.Approve)
	r.DELETE("/listings/:id", middleware.OptionalJWT(identitySvc), moderationHandler.Reject)

	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(catalogSvc, logr)
		r.GET("/dogs/export", handler.NewExportHandler(exportSvc).Export)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
