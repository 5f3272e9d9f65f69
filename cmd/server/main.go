// Package main implements the entry point for the Cultura API server,
// which stores users' cultural cards, enhances them through a
// text-generation model, and serves them publicly by sharing token.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/culturahq/cultura-api/internal/config"
	"github.com/culturahq/cultura-api/internal/platform/logger"
	"github.com/culturahq/cultura-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// run wires configuration, logging, the database, and all services, then
// starts the HTTP server. It returns once the server has shut down.
func run() error {
	// A missing .env file is fine; the environment may carry everything.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("generation_configured", cfg.LLM.APIKey != ""))

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	if err := postgres.RunMigrations(context.Background(), app.db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
