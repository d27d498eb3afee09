package auth

import (
	"context"
	"strings"

	"github.com/wesleysanjose/ocr/pkg/kernel"
	"github.com/wesleysanjose/ocr/pkg/logx"
)

// AuthService handles login and token issuance.
type AuthService struct {
	users  UserRepository
	tokens TokenService
}

func NewAuthService(users UserRepository, tokens TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies credentials and issues an access token. Unknown email
// and wrong password return the same error so accounts cannot be probed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials()
	}
	if !user.IsActive {
		return nil, ErrUserInactive()
	}
	if !user.CheckPassword(password) {
		logx.WithField("email", email).Warn("Failed login attempt")
		return nil, ErrInvalidCredentials()
	}

	token, claims, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{
		"user_id":   user.ID.String(),
		"tenant_id": user.TenantID.String(),
	}).Info("🔐 User logged in")

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt,
		User:        *user,
	}, nil
}

// Me returns the account behind an auth context.
func (s *AuthService) Me(ctx context.Context, auth *kernel.AuthContext) (*User, error) {
	return s.users.FindByID(ctx, auth.UserID)
}
