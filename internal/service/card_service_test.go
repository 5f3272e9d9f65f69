package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/store"
)

func validCardData() domain.CardData {
	return domain.CardData{
		Movies: "Blade Runner, Stalker",
		Series: "The Wire",
		Music:  "Miles Davis",
		Books:  "Invisible Cities",
	}
}

func TestNewCardService(t *testing.T) {
	t.Parallel()

	t.Run("nil cardStore", func(t *testing.T) {
		t.Parallel()
		svc, err := NewCardService(nil, slog.Default())
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		t.Parallel()
		svc, err := NewCardService(new(MockCardStore), nil)
		assert.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestCardService_CreateCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		var saved *domain.Card
		cardStore.On("Create", ctx, mock.AnythingOfType("*domain.Card")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*domain.Card)
			}).
			Return(nil).Once()

		card, err := svc.CreateCard(ctx, userID, validCardData(), nil)
		require.NoError(t, err)
		require.NotNil(t, card)

		assert.Equal(t, userID, card.UserID)
		assert.Len(t, card.SharingToken, 12)
		assert.Equal(t, card.CreatedAt, card.ModifiedAt)
		assert.Nil(t, card.GeneratedCardData)
		assert.Same(t, saved, card)
		cardStore.AssertExpectations(t)
	})

	t.Run("with generated data", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		generated := &domain.CardData{
			Movies: `[{"title":"Blade Runner"}]`,
			Series: `[{"title":"The Wire"}]`,
			Music:  `[{"title":"Kind of Blue"}]`,
			Books:  `[{"title":"Invisible Cities"}]`,
		}
		cardStore.On("Create", ctx, mock.AnythingOfType("*domain.Card")).Return(nil).Once()

		card, err := svc.CreateCard(ctx, userID, validCardData(), generated)
		require.NoError(t, err)
		assert.Equal(t, generated, card.GeneratedCardData)
	})

	t.Run("duplicate card passes through", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("Create", ctx, mock.AnythingOfType("*domain.Card")).
			Return(store.ErrCardExists).Once()

		card, err := svc.CreateCard(ctx, userID, validCardData(), nil)
		assert.Nil(t, card)
		assert.ErrorIs(t, err, store.ErrCardExists)
	})

	t.Run("incomplete data rejected before store call", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		data := validCardData()
		data.Books = ""

		card, err := svc.CreateCard(ctx, userID, data, nil)
		assert.Nil(t, card)
		assert.ErrorIs(t, err, domain.ErrCardDataIncomplete)
		cardStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure wrapped", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		storeErr := errors.New("connection reset")
		cardStore.On("Create", ctx, mock.AnythingOfType("*domain.Card")).
			Return(storeErr).Once()

		_, err = svc.CreateCard(ctx, userID, validCardData(), nil)
		require.Error(t, err)

		var svcErr *CardServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_card", svcErr.Operation)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestCardService_GetCardByOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		want := &domain.Card{ID: uuid.New(), UserID: userID}
		cardStore.On("GetByUserID", ctx, userID).Return(want, nil).Once()

		card, err := svc.GetCardByOwner(ctx, userID)
		require.NoError(t, err)
		assert.Same(t, want, card)
	})

	t.Run("not found passes through", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("GetByUserID", ctx, userID).Return(nil, store.ErrCardNotFound).Once()

		_, err = svc.GetCardByOwner(ctx, userID)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}

func TestCardService_UpdateCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	existing := func() *domain.Card {
		created := time.Now().UTC().Add(-time.Hour)
		return &domain.Card{
			ID:           uuid.New(),
			UserID:       userID,
			CardData:     validCardData(),
			SharingToken: "abcdef123456",
			CreatedAt:    created,
			ModifiedAt:   created,
		}
	}

	t.Run("success preserves token and advances modified time", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		current := existing()
		cardStore.On("GetByUserID", ctx, userID).Return(current, nil).Once()
		cardStore.On("Update", ctx, mock.AnythingOfType("*domain.Card")).Return(nil).Once()

		newData := validCardData()
		newData.Movies = "Solaris"

		card, err := svc.UpdateCard(ctx, userID, newData, nil)
		require.NoError(t, err)

		assert.Equal(t, "Solaris", card.CardData.Movies)
		assert.Equal(t, "abcdef123456", card.SharingToken)
		assert.Equal(t, current.CreatedAt, card.CreatedAt)
		assert.True(t, card.ModifiedAt.After(card.CreatedAt))
		cardStore.AssertExpectations(t)
	})

	t.Run("nil generated keeps previous generated data", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		current := existing()
		current.GeneratedCardData = &domain.CardData{
			Movies: `[{"title":"Blade Runner"}]`,
			Series: `[{"title":"The Wire"}]`,
			Music:  `[{"title":"Kind of Blue"}]`,
			Books:  `[{"title":"Invisible Cities"}]`,
		}
		cardStore.On("GetByUserID", ctx, userID).Return(current, nil).Once()
		cardStore.On("Update", ctx, mock.AnythingOfType("*domain.Card")).Return(nil).Once()

		card, err := svc.UpdateCard(ctx, userID, validCardData(), nil)
		require.NoError(t, err)
		assert.NotNil(t, card.GeneratedCardData)
	})

	t.Run("not found skips write", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("GetByUserID", ctx, userID).Return(nil, store.ErrCardNotFound).Once()

		_, err = svc.UpdateCard(ctx, userID, validCardData(), nil)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
		cardStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("card vanished between read and write", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("GetByUserID", ctx, userID).Return(existing(), nil).Once()
		cardStore.On("Update", ctx, mock.AnythingOfType("*domain.Card")).
			Return(store.ErrCardNotFound).Once()

		_, err = svc.UpdateCard(ctx, userID, validCardData(), nil)
		assert.ErrorIs(t, err, ErrCardUpdateFailed)
	})
}

func TestCardService_DeleteCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("Delete", ctx, userID).Return(nil).Once()
		assert.NoError(t, svc.DeleteCard(ctx, userID))
	})

	t.Run("not found passes through", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("Delete", ctx, userID).Return(store.ErrCardNotFound).Once()
		assert.ErrorIs(t, svc.DeleteCard(ctx, userID), store.ErrCardNotFound)
	})
}

func TestCardService_GetSharedCard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		want := &domain.Card{ID: uuid.New(), SharingToken: "abcdef123456"}
		cardStore.On("GetBySharingToken", ctx, "abcdef123456").Return(want, nil).Once()

		card, err := svc.GetSharedCard(ctx, "abcdef123456")
		require.NoError(t, err)
		assert.Same(t, want, card)
	})

	t.Run("empty token is not found", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		_, err = svc.GetSharedCard(ctx, "")
		assert.ErrorIs(t, err, store.ErrCardNotFound)
		cardStore.AssertNotCalled(t, "GetBySharingToken", mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		cardStore := new(MockCardStore)
		svc, err := NewCardService(cardStore, slog.Default())
		require.NoError(t, err)

		cardStore.On("GetBySharingToken", ctx, "nosuchtoken1").
			Return(nil, store.ErrCardNotFound).Once()

		_, err = svc.GetSharedCard(ctx, "nosuchtoken1")
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}
