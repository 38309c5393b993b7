package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/config"
	"github.com/pageza/symptom-diary/backend/internal/api"
	"github.com/pageza/symptom-diary/backend/internal/database"
	"github.com/pageza/symptom-diary/backend/internal/middleware"
	"github.com/pageza/symptom-diary/backend/internal/pipeline"
	"github.com/pageza/symptom-diary/backend/internal/router"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New wires the services and routes. exportStore may be nil, which
// disables exports.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, exportStore service.ObjectStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := pipeline.DefaultOptions()
	if cfg.MaxCombinationSetSize > 0 {
		opts.MaxCombinationSetSize = cfg.MaxCombinationSetSize
	}

	accounts := service.NewAccountService(db, logger)
	var sessions service.ISessionStore = service.NewMemorySessionStore()
	if redisClient != nil {
		sessions = service.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	}
	dashboard := service.NewDashboardService(accounts, sessions, opts, logger)
	exports := service.NewExportService(dashboard, exportStore, db, logger)

	checks := map[string]api.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}
	var limiter *middleware.RateLimiter
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		if cfg.SearchRateLimit > 0 {
			limiter = middleware.NewSearchRateLimiter(redisClient, cfg.SearchRateLimit, logger)
		}
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(router.Dependencies{
		Dashboard:     dashboard,
		Exports:       exports,
		SearchLimiter: limiter,
		HealthChecks:  checks,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.Environment == config.Production,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        logger,
	})

	return &Server{cfg: cfg, router: r, logger: logger}
}

// Handler returns the root handler, routes wrapped in the JSON error handler.
func (s *Server) Handler() http.Handler {
	return middleware.ErrorHandler(s.logger, s.router)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
