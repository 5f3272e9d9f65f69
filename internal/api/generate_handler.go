package api

import (
	"log/slog"
	"net/http"

	"github.com/culturahq/cultura-api/internal/api/shared"
	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/generation"
	"github.com/culturahq/cultura-api/internal/platform/logger"
)

// GenerateHandler handles card enhancement requests.
type GenerateHandler struct {
	enhancer *generation.Enhancer
	logger   *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler
func NewGenerateHandler(enhancer *generation.Enhancer, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		enhancer: enhancer,
		logger:   logger.With(slog.String("component", "generate_handler")),
	}
}

// GenerateCard handles POST /cards/generate requests
// It runs the enhancement workflow over the submitted card data and
// returns the enhanced data without persisting anything. Input with any
// field blank short-circuits with the original data unchanged.
func (h *GenerateHandler) GenerateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authenticatedUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	data := domain.CardData{
		Movies: req.Movies,
		Series: req.Series,
		Music:  req.Music,
		Books:  req.Books,
	}

	log.Debug("generating enhanced card data", slog.String("user_id", userID.String()))

	result, err := h.enhancer.Enhance(r.Context(), data)
	if err != nil {
		status := MapErrorToStatusCode(err)
		code := GetGenerationErrorCode(err)
		message := GetSafeErrorMessage(err)

		slog.LogAttrs(r.Context(), slog.LevelError, "card generation failed",
			slog.String("user_id", userID.String()),
			slog.String("code", code),
			slog.Int("status_code", status))
		shared.RespondWithErrorCode(w, r, status, code, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateCardResponse{
		CardData: result.CardData,
		Enhanced: result.Enhanced,
	})
}
