package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/culturahq/cultura-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store. The card must be valid
	// according to domain validation rules.
	// Returns ErrCardExists if the owner already has a card.
	Create(ctx context.Context, card *domain.Card) error

	// GetByUserID retrieves the single card owned by the given user.
	// Returns ErrCardNotFound if the user has no card.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Card, error)

	// GetBySharingToken retrieves a card by its public sharing token.
	// Returns ErrCardNotFound if no card carries the token.
	GetBySharingToken(ctx context.Context, token string) (*domain.Card, error)

	// Update replaces the card's data and generated data and persists the
	// refreshed modification timestamp. The sharing token and creation
	// timestamp are never written. Returns ErrCardNotFound if the user has
	// no card.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes the card owned by the given user.
	// Returns ErrCardNotFound if the user has no card.
	Delete(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a store instance bound to the given transaction.
	WithTx(tx *sql.Tx) CardStore
}
