package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndCompare(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash(ctx, "correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, svc.Compare(ctx, hash, "correct horse battery"))
	assert.ErrorIs(t, svc.Compare(ctx, hash, "wrong password"), ErrPasswordMismatch)
}

func TestPasswordService_HashTooLong(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewPasswordService(bcrypt.MinCost)

	_, err := svc.Hash(ctx, strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestPasswordService_CompareInvalidHash(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewPasswordService(bcrypt.MinCost)

	err := svc.Compare(ctx, "not-a-bcrypt-hash", "whatever")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestNewPasswordService_CostClamped(t *testing.T) {
	t.Parallel()

	svc := NewPasswordService(999).(*bcryptPasswordService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)

	svc = NewPasswordService(0).(*bcryptPasswordService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
