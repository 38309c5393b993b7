package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/config"
	"github.com/pageza/symptom-diary/backend/internal/database"
	"github.com/pageza/symptom-diary/backend/internal/logging"
	"github.com/pageza/symptom-diary/backend/internal/server"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db, cfg.MigrationsDir, cfg.DBSchema, logger); err != nil {
		return err
	}

	srv, cleanup, err := newServer(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	return srv.Start(ctx)
}

// newServer connects the optional collaborators and builds the server.
// Without a reachable redis, sessions are kept in memory and the search
// rate limit is off; without a bucket, exports are disabled.
func newServer(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*server.Server, func(), error) {
	cleanup := func() {}
	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, keeping sessions in memory", zap.Error(err))
		redisClient = nil
	} else {
		cleanup = func() { redisClient.Close() }
	}

	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	var exportStore service.ObjectStore
	if s3cfg != nil {
		exportStore = s3cfg
	} else {
		logger.Info("no export bucket configured, exports disabled")
	}

	return server.New(cfg, db, redisClient, exportStore, logger), cleanup, nil
}
