package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-chatbot-be/internal/bootstrap"
	"portfolio-chatbot-be/internal/config"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/server"
	"portfolio-chatbot-be/internal/tracer"
	"portfolio-chatbot-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(ctx, sysLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(shutdownCtx)
	}()

	// 3. Initialize Database (optional: without it vectors and sessions stay in memory)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(ctx, cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
		defer database.Close(gormDB)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to bootstrap application: %v", err)
	}
	defer container.Close()

	// 5. Start Background Services
	go func() {
		sysLogger.Info("MAIN", "Starting consumer service", nil)
		if err := container.ConsumerService.Consume(ctx); err != nil {
			sysLogger.Error("MAIN", "Consumer service stopped", map[string]interface{}{"error": err})
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		sysLogger.Info("MAIN", "Shutting down server", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		sysLogger.Error("MAIN", "Server exited", map[string]interface{}{"error": err})
	}
}
