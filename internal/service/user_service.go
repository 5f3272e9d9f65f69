package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/platform/logger"
	"github.com/culturahq/cultura-api/internal/service/auth"
	"github.com/culturahq/cultura-api/internal/store"
)

// ErrInvalidCredentials indicates the email or password supplied during
// authentication does not match a registered user. Callers must not
// distinguish between the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService provides user registration and authentication.
type UserService interface {
	// RegisterUser creates a new user with a hashed password.
	// Returns store.ErrEmailExists if the email is already registered.
	RegisterUser(ctx context.Context, email, password string) (*domain.User, error)

	// AuthenticateUser verifies email and password and returns the user.
	// Returns ErrInvalidCredentials for both unknown emails and wrong
	// passwords.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore       store.UserStore
	passwordService auth.PasswordService
	db              *sql.DB
	logger          *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	passwordService auth.PasswordService,
	db *sql.DB,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if passwordService == nil {
		return nil, domain.NewValidationError("passwordService", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:       userStore,
		passwordService: passwordService,
		db:              db,
		logger:          logger.With(slog.String("component", "user_service")),
	}, nil
}

// RegisterUser creates a new user with the specified email and password.
// The password is hashed before the user is saved, and the save runs in
// a transaction when a database handle is available.
func (s *UserServiceImpl) RegisterUser(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		log.Warn("invalid registration data", slog.String("error", err.Error()))
		return nil, err
	}

	hashed, err := s.passwordService.Hash(ctx, password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.userStore.WithTx(tx).Create(ctx, user)
		})
	} else {
		err = s.userStore.Create(ctx, user)
	}
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register an existing email")
			return nil, err
		}
		log.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// AuthenticateUser verifies the credentials against the stored hash.
func (s *UserServiceImpl) AuthenticateUser(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("authentication attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to retrieve user by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if err := s.passwordService.Compare(ctx, user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("authentication attempt with wrong password",
				slog.String("user_id", user.ID.String()))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to compare password",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found", slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}
