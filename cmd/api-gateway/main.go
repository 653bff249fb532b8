package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/noah-isme/placement-portal-api/api/swagger"
	"github.com/noah-isme/placement-portal-api/internal/server"
	"github.com/noah-isme/placement-portal-api/pkg/config"
	"github.com/noah-isme/placement-portal-api/pkg/logger"
)

// @title Placement Portal API
// @version 1.0.0
// @description Campus placement portal for students, companies and college administrators
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logr)
	if err != nil {
		logr.Fatal("failed to initialise server", zap.Error(err))
	}
	if err := srv.Run(ctx); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
