package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardUserIDEmpty is returned when a card's user ID is empty or nil.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardDataIncomplete is returned when any of the four cultural
	// preference fields is empty.
	ErrCardDataIncomplete = errors.New("all card data fields must be non-empty")

	// ErrSharingTokenEmpty is returned when a card's sharing token is empty.
	ErrSharingTokenEmpty = errors.New("card sharing token cannot be empty")
)

// CardData holds the four free-text cultural preference fields of a card.
// All fields are required when the data is submitted for persistence or
// generation.
type CardData struct {
	Movies string `json:"movies"`
	Series string `json:"series"`
	Music  string `json:"music"`
	Books  string `json:"books"`
}

// Validate checks that every field carries content.
func (d CardData) Validate() error {
	if d.Movies == "" || d.Series == "" || d.Music == "" || d.Books == "" {
		return ErrCardDataIncomplete
	}
	return nil
}

// IsComplete reports whether all four fields carry content after
// trimming whitespace. Generation only runs on complete data; anything
// less is returned unchanged without calling the model.
func (d CardData) IsComplete() bool {
	return strings.TrimSpace(d.Movies) != "" &&
		strings.TrimSpace(d.Series) != "" &&
		strings.TrimSpace(d.Music) != "" &&
		strings.TrimSpace(d.Books) != ""
}

// GeneratedMediaItem is one enriched entry produced by the model for a
// category. A category's generated content is up to three of these,
// serialized as a JSON array string into the matching CardData field.
type GeneratedMediaItem struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Genres   []string `json:"genres"`
	Note     string   `json:"note"`
	ImageURL *string  `json:"imageUrl,omitempty"`
	InfoURL  *string  `json:"infoUrl,omitempty"`
}

// Card is a user's single cultural card. Each user owns at most one card,
// enforced by a unique constraint on UserID. The sharing token is an
// opaque public identifier minted at creation and never changed; it
// allows unauthenticated read access through the shared endpoint.
type Card struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	CardData          CardData  `json:"card_data"`
	GeneratedCardData *CardData `json:"generated_card_data,omitempty"`
	SharingToken      string    `json:"sharing_token"`
	CreatedAt         time.Time `json:"created_at"`
	ModifiedAt        time.Time `json:"modified_at"`
}

// NewCard creates a new Card owned by userID with the given data and
// sharing token. CreatedAt and ModifiedAt are both set to the same
// instant. Returns an error if validation fails.
func NewCard(userID uuid.UUID, data CardData, generated *CardData, sharingToken string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:                uuid.New(),
		UserID:            userID,
		CardData:          data,
		GeneratedCardData: generated,
		SharingToken:      sharingToken,
		CreatedAt:         now,
		ModifiedAt:        now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if err := c.CardData.Validate(); err != nil {
		return err
	}

	if c.SharingToken == "" {
		return ErrSharingTokenEmpty
	}

	return nil
}

// Replace swaps in new card data (and generated data when provided) and
// refreshes the modification timestamp. CreatedAt and SharingToken are
// untouched. Returns an error if the new data is invalid.
func (c *Card) Replace(data CardData, generated *CardData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	c.CardData = data
	if generated != nil {
		c.GeneratedCardData = generated
	}
	c.ModifiedAt = time.Now().UTC()
	return nil
}
