package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch indicates the supplied password does not match the
// stored hash.
var ErrPasswordMismatch = errors.New("password does not match")

// PasswordService hashes plaintext passwords and verifies them against
// stored hashes.
type PasswordService interface {
	// Hash returns a bcrypt hash of the plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Compare checks a plaintext password against a stored hash. It
	// returns nil on match and ErrPasswordMismatch on mismatch.
	Compare(ctx context.Context, hashedPassword, password string) error
}

// bcryptPasswordService implements PasswordService using bcrypt.
type bcryptPasswordService struct {
	cost int
}

var _ PasswordService = (*bcryptPasswordService)(nil)

// NewPasswordService creates a PasswordService with the given bcrypt
// cost. Costs outside bcrypt's supported range fall back to the bcrypt
// default.
func NewPasswordService(cost int) PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordService{cost: cost}
}

func (s *bcryptPasswordService) Hash(ctx context.Context, password string) (string, error) {
	// bcrypt silently truncates input beyond 72 bytes; reject instead.
	if len(password) > 72 {
		return "", fmt.Errorf("password exceeds bcrypt's 72 byte limit")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *bcryptPasswordService) Compare(ctx context.Context, hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
