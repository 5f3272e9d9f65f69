package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/culturahq/cultura-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CardDataPayload carries the four cultural preference fields in card
// requests. All fields are required.
type CardDataPayload struct {
	Movies string `json:"movies" validate:"required"`
	Series string `json:"series" validate:"required"`
	Music  string `json:"music"  validate:"required"`
	Books  string `json:"books"  validate:"required"`
}

// toDomain converts the payload to a domain value.
func (p CardDataPayload) toDomain() domain.CardData {
	return domain.CardData{
		Movies: p.Movies,
		Series: p.Series,
		Music:  p.Music,
		Books:  p.Books,
	}
}

// CreateCardRequest defines the payload for creating a card.
// GeneratedCardData is optional and carries model-enhanced content the
// client obtained from the generation endpoint.
type CreateCardRequest struct {
	CardData          CardDataPayload  `json:"card_data"                     validate:"required"`
	GeneratedCardData *CardDataPayload `json:"generated_card_data,omitempty"`
}

// UpdateCardRequest defines the payload for updating a card.
type UpdateCardRequest struct {
	CardData          CardDataPayload  `json:"card_data"                     validate:"required"`
	GeneratedCardData *CardDataPayload `json:"generated_card_data,omitempty"`
}

// GenerateCardRequest defines the payload for the generation endpoint.
// Fields may be blank; incomplete data comes back unchanged without a
// model call.
type GenerateCardRequest struct {
	Movies string `json:"movies"`
	Series string `json:"series"`
	Music  string `json:"music"`
	Books  string `json:"books"`
}

// CardResponse represents a card returned to its owner.
type CardResponse struct {
	ID                uuid.UUID        `json:"id"`
	UserID            uuid.UUID        `json:"user_id"`
	CardData          domain.CardData  `json:"card_data"`
	GeneratedCardData *domain.CardData `json:"generated_card_data,omitempty"`
	SharingToken      string           `json:"sharing_token"`
	CreatedAt         time.Time        `json:"created_at"`
	ModifiedAt        time.Time        `json:"modified_at"`
}

// SharedCardResponse represents a card returned through the public
// sharing endpoint. The owner's user ID is deliberately omitted.
type SharedCardResponse struct {
	CardData          domain.CardData  `json:"card_data"`
	GeneratedCardData *domain.CardData `json:"generated_card_data,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	ModifiedAt        time.Time        `json:"modified_at"`
}

// GenerateCardResponse carries the enhanced card data produced by the
// generation endpoint. Enhanced is false when generation was skipped for
// incomplete input or the model reply was unusable.
type GenerateCardResponse struct {
	CardData domain.CardData `json:"card_data"`
	Enhanced bool            `json:"enhanced"`
}

// cardToResponse transforms a domain card into its owner-facing response.
func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:                card.ID,
		UserID:            card.UserID,
		CardData:          card.CardData,
		GeneratedCardData: card.GeneratedCardData,
		SharingToken:      card.SharingToken,
		CreatedAt:         card.CreatedAt,
		ModifiedAt:        card.ModifiedAt,
	}
}

// cardToSharedResponse transforms a domain card into the public shared
// view.
func cardToSharedResponse(card *domain.Card) SharedCardResponse {
	return SharedCardResponse{
		CardData:          card.CardData,
		GeneratedCardData: card.GeneratedCardData,
		CreatedAt:         card.CreatedAt,
		ModifiedAt:        card.ModifiedAt,
	}
}
