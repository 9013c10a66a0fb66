package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/handler"
	"github.com/noah-isme/adminui-api/internal/models"
	"github.com/noah-isme/adminui-api/internal/repository"
	"github.com/noah-isme/adminui-api/internal/service"
	"github.com/noah-isme/adminui-api/internal/table"
	"github.com/noah-isme/adminui-api/pkg/cache"
	"github.com/noah-isme/adminui-api/pkg/config"
	"github.com/noah-isme/adminui-api/pkg/database"
	"github.com/noah-isme/adminui-api/pkg/export"
	"github.com/noah-isme/adminui-api/pkg/logger"
)

// @title Admin UI API
// @version 1.0.0
// @description Server-owned state for the members admin table
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type sessionStore interface {
	Get(ctx context.Context, id string) (table.Snapshot, error)
	Save(ctx context.Context, id string, snap table.Snapshot) error
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) ([]string, error)
}

type memberSource interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Member, error)
}

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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	store, closeStore, err := newSessionStore(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer closeStore()

	source, closeSource, err := newMemberSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	sessions := service.NewSessionService(store, validator.New(), metrics, logr, service.SessionConfig{PageSize: cfg.Table.PageSize})
	exporter := service.NewExportService(sessions, logr, export.NewCSVExporter(), export.NewPDFExporter().WithUTF8Font(cfg.Export.PDFFontPath))
	loader := service.NewLoaderService(source, sessions, metrics, logr)

	deps := routerDeps{
		cfg:      cfg,
		logger:   logr,
		metrics:  metrics,
		sessions: handler.NewSessionHandler(sessions, exporter),
		system:   handler.NewMetricsHandler(metrics, loader),
	}
	if cfg.Auth.Enabled {
		deps.tokens = service.NewTokenService(cfg.Auth.Secret)
	}

	if err := loader.Start(ctx); err != nil {
		return fmt.Errorf("start member loader: %w", err)
	}
	defer loader.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("source", source.Name()),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (sessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory, "":
		return repository.NewMemorySessionRepository(cfg.Session.TTL), func() {}, nil
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisSessionRepository(client, cfg.Redis.KeyPrefix, cfg.Session.TTL, logr)
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func newMemberSource(ctx context.Context, cfg *config.Config) (memberSource, func(), error) {
	switch cfg.Source.Driver {
	case config.SourceHTTP, "":
		return repository.NewHTTPMemberSource(cfg.Source.URL, nil, cfg.Source.Timeout), func() {}, nil
	case config.SourceS3:
		src, err := repository.NewS3MemberSource(ctx, cfg.Source.S3)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	case config.SourceSQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		src, err := repository.NewSQLMemberSource(db, cfg.Source.SQLTable)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return src, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown member source %q", cfg.Source.Driver)
	}
}
