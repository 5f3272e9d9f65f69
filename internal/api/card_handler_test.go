package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culturahq/cultura-api/internal/api/shared"
	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/store"
)

func testCard(userID uuid.UUID) *domain.Card {
	now := time.Now().UTC()
	return &domain.Card{
		ID:     uuid.New(),
		UserID: userID,
		CardData: domain.CardData{
			Movies: "Blade Runner",
			Series: "The Wire",
			Music:  "Miles Davis",
			Books:  "Invisible Cities",
		},
		SharingToken: "abcdef123456",
		CreatedAt:    now,
		ModifiedAt:   now,
	}
}

// authedRequest builds a request whose context carries the user ID the
// auth middleware would have injected.
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func validCardBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(CreateCardRequest{
		CardData: CardDataPayload{
			Movies: "Blade Runner",
			Series: "The Wire",
			Music:  "Miles Davis",
			Books:  "Invisible Cities",
		},
	})
	require.NoError(t, err)
	return body
}

func TestCardHandler_CreateCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		card := testCard(userID)
		svc.On("CreateCard", mock.Anything, userID, card.CardData, (*domain.CardData)(nil)).
			Return(card, nil).Once()

		w := httptest.NewRecorder()
		handler.CreateCard(w, authedRequest(http.MethodPost, "/api/cards", validCardBody(t), userID))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp CardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, card.ID, resp.ID)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "abcdef123456", resp.SharingToken)
		svc.AssertExpectations(t)
	})

	t.Run("missing user ID", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cards", bytes.NewReader(validCardBody(t)))
		handler.CreateCard(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "CreateCard",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		w := httptest.NewRecorder()
		handler.CreateCard(w, authedRequest(http.MethodPost, "/api/cards", []byte("{not json"), userID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing field fails validation", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		body, err := json.Marshal(CreateCardRequest{
			CardData: CardDataPayload{Movies: "Blade Runner"},
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler.CreateCard(w, authedRequest(http.MethodPost, "/api/cards", body, userID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateCard",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate card conflicts", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		svc.On("CreateCard", mock.Anything, userID, mock.Anything, (*domain.CardData)(nil)).
			Return(nil, store.ErrCardExists).Once()

		w := httptest.NewRecorder()
		handler.CreateCard(w, authedRequest(http.MethodPost, "/api/cards", validCardBody(t), userID))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCardHandler_GetCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		card := testCard(userID)
		svc.On("GetCardByOwner", mock.Anything, userID).Return(card, nil).Once()

		w := httptest.NewRecorder()
		handler.GetCard(w, authedRequest(http.MethodGet, "/api/cards", nil, userID))

		require.Equal(t, http.StatusOK, w.Code)

		var resp CardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, card.ID, resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		svc.On("GetCardByOwner", mock.Anything, userID).
			Return(nil, store.ErrCardNotFound).Once()

		w := httptest.NewRecorder()
		handler.GetCard(w, authedRequest(http.MethodGet, "/api/cards", nil, userID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCardHandler_UpdateCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		card := testCard(userID)
		svc.On("UpdateCard", mock.Anything, userID, card.CardData, (*domain.CardData)(nil)).
			Return(card, nil).Once()

		w := httptest.NewRecorder()
		handler.UpdateCard(w, authedRequest(http.MethodPut, "/api/cards", validCardBody(t), userID))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		svc.On("UpdateCard", mock.Anything, userID, mock.Anything, (*domain.CardData)(nil)).
			Return(nil, store.ErrCardNotFound).Once()

		w := httptest.NewRecorder()
		handler.UpdateCard(w, authedRequest(http.MethodPut, "/api/cards", validCardBody(t), userID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCardHandler_DeleteCard(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		svc.On("DeleteCard", mock.Anything, userID).Return(nil).Once()

		w := httptest.NewRecorder()
		handler.DeleteCard(w, authedRequest(http.MethodDelete, "/api/cards", nil, userID))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		svc.On("DeleteCard", mock.Anything, userID).Return(store.ErrCardNotFound).Once()

		w := httptest.NewRecorder()
		handler.DeleteCard(w, authedRequest(http.MethodDelete, "/api/cards", nil, userID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCardHandler_GetSharedCard(t *testing.T) {
	t.Parallel()

	// Route through chi so the URL parameter is populated.
	newRouter := func(handler *CardHandler) http.Handler {
		r := chi.NewRouter()
		r.Get("/shared/{token}", handler.GetSharedCard)
		return r
	}

	t.Run("success omits owner identity", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		card := testCard(uuid.New())
		svc.On("GetSharedCard", mock.Anything, "abcdef123456").Return(card, nil).Once()

		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/shared/abcdef123456", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "user_id")
		assert.NotContains(t, raw, "id")
		assert.NotContains(t, raw, "sharing_token")
		assert.Contains(t, raw, "card_data")
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		svc := new(mockCardService)
		handler := NewCardHandler(svc, slog.Default())

		svc.On("GetSharedCard", mock.Anything, "nosuchtoken1").
			Return(nil, store.ErrCardNotFound).Once()

		w := httptest.NewRecorder()
		newRouter(handler).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/shared/nosuchtoken1", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
