package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/adminui-api/api/swagger"
	"github.com/noah-isme/adminui-api/internal/handler"
	"github.com/noah-isme/adminui-api/internal/middleware"
	"github.com/noah-isme/adminui-api/internal/service"
	"github.com/noah-isme/adminui-api/pkg/config"
	"github.com/noah-isme/adminui-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/adminui-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/adminui-api/pkg/middleware/requestid"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *service.MetricsService
	sessions *handler.SessionHandler
	system   *handler.MetricsHandler
	tokens   *service.TokenService
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.logger, "/health", "/ready", "/metrics"))
	r.Use(middleware.Metrics(d.metrics, "/metrics"))
	r.Use(corsmiddleware.New(d.cfg.CORS.AllowedOrigins))

	r.GET("/health", d.system.Health)
	r.GET("/ready", d.system.Ready)
	r.GET("/metrics", d.system.Prometheus)

	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.cfg.APIPrefix)
	api.GET("/system/metrics", d.system.SystemMetrics)

	sessions := api.Group("/sessions")
	if d.tokens != nil {
		sessions.Use(middleware.JWT(d.tokens))
	}
	sessions.POST("", d.sessions.Create)
	sessions.GET("/:id", d.sessions.Get)
	sessions.DELETE("/:id", d.sessions.Delete)
	sessions.POST("/:id/intents", d.sessions.Intent)
	sessions.GET("/:id/export", d.sessions.Export)

	return r
}
