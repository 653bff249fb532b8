package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/placement-portal-api/pkg/cache"
	"github.com/noah-isme/placement-portal-api/pkg/config"
	"github.com/noah-isme/placement-portal-api/pkg/database"
)

// Server owns the HTTP listener and the resources behind it.
type Server struct {
	config *config.Config
	logger *zap.Logger
	db     *sqlx.DB
	redis  *redis.Client
	deps   *Dependencies
	http   *http.Server
}

// New connects to the database and Redis, wires the dependencies and builds
// the router.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		}
	}

	deps, err := BuildDependencies(cfg, db, redisClient, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("build dependencies: %w", err)
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		deps:   deps,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps, logger),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.deps.Start(ctx)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.http.Addr), zap.String("env", s.config.Env))
		serverErrors <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.close()
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops the listener and releases resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("http shutdown failed", zap.Error(err))
	}
	s.close()
	s.logger.Info("server stopped")
	return err
}

func (s *Server) close() {
	s.deps.Stop()
	if s.redis != nil {
		_ = s.redis.Close()
	}
	_ = s.db.Close()
}
