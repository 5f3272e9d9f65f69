package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/culturahq/cultura-api/internal/config"
	"github.com/culturahq/cultura-api/internal/generation"
	"github.com/culturahq/cultura-api/internal/platform/openrouter"
	"github.com/culturahq/cultura-api/internal/platform/postgres"
	"github.com/culturahq/cultura-api/internal/service"
	"github.com/culturahq/cultura-api/internal/service/auth"
	"github.com/culturahq/cultura-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	cardStore store.CardStore

	// Service interfaces
	jwtService  auth.JWTService
	userService service.UserService
	cardService service.CardService
	enhancer    *generation.Enhancer
}

// newApplication builds the full dependency graph for the server.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	cardStore := postgres.NewPostgresCardStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	passwordService := auth.NewPasswordService(cfg.Auth.BcryptCost)

	userService, err := service.NewUserService(userStore, passwordService, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	cardService, err := service.NewCardService(cardStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	modelClient := openrouter.NewClient(cfg.LLM, generation.SystemMessage, logger)
	enhancer, err := generation.NewEnhancer(modelClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create enhancer: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		userStore:   userStore,
		cardStore:   cardStore,
		jwtService:  jwtService,
		userService: userService,
		cardService: cardService,
		enhancer:    enhancer,
	}, nil
}

// setupDatabase establishes the database connection and configures the
// connection pool.
func setupDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// cleanup releases application resources. Safe to call more than once.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
		app.db = nil
	}
}
