package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"mecanica_xpto_os/internal/bootstrap"
	"mecanica_xpto_os/internal/config"
	"mecanica_xpto_os/internal/infrastructure/logger"
	"mecanica_xpto_os/internal/infrastructure/telemetry"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

var version = "dev"

// @title           Mecânica XPTO - Ordens de Serviço API
// @version         1.0
// @description     Service order lifecycle, budgets and stock ledger backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Failed to startup the application", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	c, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			zl.Warn("[api] close failed", zap.Error(err))
		}
	}()

	stopOutbox := c.StartOutbox(ctx)
	defer stopOutbox()
	if cfg.Jobs.Embedded {
		c.Scheduler.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      c.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		zl.Info("[api] listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			stop()
			return err
		}
	}
	zl.Info("[api] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("[api] http shutdown failed", zap.Error(err))
	}
	c.Scheduler.Wait()
	stopOutbox()
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		zl.Warn("[api] telemetry shutdown failed", zap.Error(err))
	}
	return nil
}
