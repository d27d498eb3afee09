package auth

import (
	"context"

	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// UserRepository defines the contract for user persistence
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
}

// TokenService defines the contract for JWT token management
type TokenService interface {
	GenerateAccessToken(user *User) (string, *TokenClaims, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
