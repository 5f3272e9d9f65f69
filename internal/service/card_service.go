package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/platform/logger"
	"github.com/culturahq/cultura-api/internal/store"
)

// CardServiceError is a custom error type for card service errors.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// CardService provides operations on a user's cultural card.
type CardService interface {
	// CreateCard creates the user's card with a freshly minted sharing
	// token. Returns store.ErrCardExists if the user already has a card.
	CreateCard(
		ctx context.Context,
		userID uuid.UUID,
		data domain.CardData,
		generated *domain.CardData,
	) (*domain.Card, error)

	// GetCardByOwner retrieves the card owned by the given user.
	// Returns store.ErrCardNotFound if the user has no card.
	GetCardByOwner(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// UpdateCard replaces the card's data, and its generated data when
	// provided, refreshing the modification timestamp. The sharing token
	// and creation timestamp are preserved.
	// Returns store.ErrCardNotFound if the user has no card.
	UpdateCard(
		ctx context.Context,
		userID uuid.UUID,
		data domain.CardData,
		generated *domain.CardData,
	) (*domain.Card, error)

	// DeleteCard removes the card owned by the given user.
	// Returns store.ErrCardNotFound if the user has no card.
	DeleteCard(ctx context.Context, userID uuid.UUID) error

	// GetSharedCard retrieves a card by its public sharing token.
	// Returns store.ErrCardNotFound if no card carries the token.
	GetSharedCard(ctx context.Context, token string) (*domain.Card, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	cardStore store.CardStore,
	logger *slog.Logger,
) (CardService, error) {
	if cardStore == nil {
		return nil, domain.NewValidationError("cardStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "card_service")),
	}, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	data domain.CardData,
	generated *domain.CardData,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	token, err := GenerateSharingToken()
	if err != nil {
		log.Error("failed to generate sharing token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewCardServiceError("create_card", "failed to generate sharing token",
			ErrCardCreationFailed)
	}

	card, err := domain.NewCard(userID, data, generated, token)
	if err != nil {
		log.Warn("invalid card data on create",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("user already has a card", slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to save card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewCardServiceError("create_card", "failed to save card", err)
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", userID.String()))

	return card, nil
}

// GetCardByOwner implements CardService.GetCardByOwner
func (s *cardServiceImpl) GetCardByOwner(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByUserID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found for user", slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to retrieve card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewCardServiceError("get_card", "failed to retrieve card", err)
	}

	return card, nil
}

// UpdateCard implements CardService.UpdateCard
// The current card is read first so the existing sharing token, creation
// timestamp, and generated data survive the replace.
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID uuid.UUID,
	data domain.CardData,
	generated *domain.CardData,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cardStore.GetByUserID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no card to update", slog.String("user_id", userID.String()))
			return nil, err
		}
		return nil, NewCardServiceError("update_card", "failed to retrieve card", err)
	}

	if err := card.Replace(data, generated); err != nil {
		log.Warn("invalid card data on update",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		if store.IsNotFoundError(err) {
			// The card vanished between the read and the write.
			return nil, fmt.Errorf("%w: %v", ErrCardUpdateFailed, err)
		}
		return nil, NewCardServiceError("update_card", "failed to save card", err)
	}

	log.Info("card updated",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", userID.String()))

	return card, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardStore.Delete(ctx, userID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no card to delete", slog.String("user_id", userID.String()))
			return err
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}

	log.Info("card deleted", slog.String("user_id", userID.String()))
	return nil
}

// GetSharedCard implements CardService.GetSharedCard
func (s *cardServiceImpl) GetSharedCard(
	ctx context.Context,
	token string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if token == "" {
		return nil, store.ErrCardNotFound
	}

	card, err := s.cardStore.GetBySharingToken(ctx, token)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no card for sharing token")
			return nil, err
		}
		log.Error("failed to retrieve shared card", slog.String("error", err.Error()))
		return nil, NewCardServiceError("get_shared_card", "failed to retrieve card", err)
	}

	return card, nil
}
