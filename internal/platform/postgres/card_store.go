package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/platform/logger"
	"github.com/culturahq/cultura-api/internal/store"
)

// cardsUserIDUniqueConstraint is the unique index enforcing one card per
// user. A violation on it means the owner already has a card rather than
// a sharing token collision.
const cardsUserIDUniqueConstraint = "cards_user_id_key"

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend. Card data is
// stored as JSONB columns.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, a default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
// It returns a new store instance that runs against the transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
// It saves a new card, serializing card data to JSONB.
// Returns store.ErrCardExists when the owner already has a card.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	cardData, generatedData, err := marshalCardColumns(card)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cards (id, user_id, card_data, generated_card_data, sharing_token, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.UserID,
		cardData,
		generatedData,
		card.SharingToken,
		card.CreatedAt,
		card.ModifiedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("unique violation during card creation",
				slog.String("card_id", card.ID.String()),
				slog.String("user_id", card.UserID.String()))
			if isConstraintViolation(err, cardsUserIDUniqueConstraint) {
				return fmt.Errorf("%w: user %s already has a card", store.ErrCardExists, card.UserID)
			}
			return MapError(err)
		}

		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("user_id", card.UserID.String()))
		return MapError(err)
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// GetByUserID implements store.CardStore.GetByUserID
// Returns store.ErrCardNotFound if the user has no card.
func (s *PostgresCardStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, card_data, generated_card_data, sharing_token, created_at, modified_at
		FROM cards
		WHERE user_id = $1
	`

	card, err := s.scanCard(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found for user", slog.String("user_id", userID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by user ID",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// GetBySharingToken implements store.CardStore.GetBySharingToken
// Returns store.ErrCardNotFound if no card carries the token.
func (s *PostgresCardStore) GetBySharingToken(ctx context.Context, token string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, card_data, generated_card_data, sharing_token, created_at, modified_at
		FROM cards
		WHERE sharing_token = $1
	`

	card, err := s.scanCard(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found for sharing token")
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by sharing token", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return card, nil
}

// Update implements store.CardStore.Update
// It replaces card_data, generated_card_data, and modified_at for the
// card owned by card.UserID. The sharing token and created_at columns are
// deliberately not in the SET list.
// Returns store.ErrCardNotFound if the user has no card.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	cardData, generatedData, err := marshalCardColumns(card)
	if err != nil {
		return err
	}

	query := `
		UPDATE cards
		SET card_data = $1, generated_card_data = $2, modified_at = $3
		WHERE user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, cardData, generatedData, card.ModifiedAt, card.UserID)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("user_id", card.UserID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no card to update", slog.String("user_id", card.UserID.String()))
			return store.ErrCardNotFound
		}
		log.Error("failed to check update result",
			slog.String("error", err.Error()),
			slog.String("user_id", card.UserID.String()))
		return err
	}

	log.Info("card updated successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// Delete implements store.CardStore.Delete
// Returns store.ErrCardNotFound if the user has no card.
func (s *PostgresCardStore) Delete(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no card to delete", slog.String("user_id", userID.String()))
			return store.ErrCardNotFound
		}
		log.Error("failed to check delete result",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	log.Info("card deleted successfully", slog.String("user_id", userID.String()))
	return nil
}

// scanCard reads one card row, decoding the JSONB data columns.
func (s *PostgresCardStore) scanCard(row *sql.Row) (*domain.Card, error) {
	var card domain.Card
	var cardData []byte
	var generatedData []byte

	err := row.Scan(
		&card.ID,
		&card.UserID,
		&cardData,
		&generatedData,
		&card.SharingToken,
		&card.CreatedAt,
		&card.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(cardData, &card.CardData); err != nil {
		return nil, fmt.Errorf("failed to decode card_data column: %w", err)
	}

	if len(generatedData) > 0 {
		var generated domain.CardData
		if err := json.Unmarshal(generatedData, &generated); err != nil {
			return nil, fmt.Errorf("failed to decode generated_card_data column: %w", err)
		}
		card.GeneratedCardData = &generated
	}

	return &card, nil
}

// marshalCardColumns serializes the JSONB columns for insert/update.
// A nil GeneratedCardData maps to SQL NULL.
func marshalCardColumns(card *domain.Card) (cardData []byte, generatedData []byte, err error) {
	cardData, err = json.Marshal(card.CardData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode card_data column: %w", err)
	}

	if card.GeneratedCardData != nil {
		generatedData, err = json.Marshal(card.GeneratedCardData)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode generated_card_data column: %w", err)
		}
	}

	return cardData, generatedData, nil
}

// isConstraintViolation reports whether err is a pgconn error on the
// named constraint.
func isConstraintViolation(err error, name string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == name
}
