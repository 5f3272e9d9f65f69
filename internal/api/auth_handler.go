package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/culturahq/cultura-api/internal/api/shared"
	"github.com/culturahq/cultura-api/internal/service"
	"github.com/culturahq/cultura-api/internal/service/auth"
	"github.com/culturahq/cultura-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService   service.UserService
	jwtService    auth.JWTService
	tokenLifetime time.Duration
	validator     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	tokenLifetime time.Duration,
) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		jwtService:    jwtService,
		tokenLifetime: tokenLifetime,
		validator:     validator.New(),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.RegisterUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to register user", err)
		return
	}

	accessToken, refreshToken, expiresAt, err := h.issueTokenPair(r, user.ID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	accessToken, refreshToken, expiresAt, err := h.issueTokenPair(r, user.ID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})
}

// RefreshToken handles the /auth/refresh endpoint. It validates the
// refresh token and issues a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	accessToken, refreshToken, expiresAt, err := h.issueTokenPair(r, claims.UserID)
	if err != nil {
		slog.Error("failed to generate tokens", "error", err, "user_id", claims.UserID)
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})
}

// issueTokenPair generates an access and refresh token for the user and
// computes the access token expiry timestamp.
func (h *AuthHandler) issueTokenPair(
	r *http.Request,
	userID uuid.UUID,
) (accessToken, refreshToken, expiresAt string, err error) {
	accessToken, err = h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		return "", "", "", err
	}

	refreshToken, err = h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		return "", "", "", err
	}

	expiresAt = time.Now().UTC().Add(h.tokenLifetime).Format(time.RFC3339)
	return accessToken, refreshToken, expiresAt, nil
}
