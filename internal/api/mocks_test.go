package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/culturahq/cultura-api/internal/domain"
	"github.com/culturahq/cultura-api/internal/service"
)

// mockCardService is a testify mock for service.CardService.
type mockCardService struct {
	mock.Mock
}

var _ service.CardService = (*mockCardService)(nil)

func (m *mockCardService) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	data domain.CardData,
	generated *domain.CardData,
) (*domain.Card, error) {
	args := m.Called(ctx, userID, data, generated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardService) GetCardByOwner(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardService) UpdateCard(
	ctx context.Context,
	userID uuid.UUID,
	data domain.CardData,
	generated *domain.CardData,
) (*domain.Card, error) {
	args := m.Called(ctx, userID, data, generated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardService) DeleteCard(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockCardService) GetSharedCard(ctx context.Context, token string) (*domain.Card, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

// mockUserService is a testify mock for service.UserService.
type mockUserService struct {
	mock.Mock
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) RegisterUser(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) AuthenticateUser(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
