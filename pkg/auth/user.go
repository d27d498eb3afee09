// Package auth provides email/password login, JWT access tokens and the
// Fiber middleware guarding the review API.
package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// User is an account that can open review sessions.
type User struct {
	ID           kernel.UserID   `json:"id"`
	TenantID     kernel.TenantID `json:"tenant_id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CheckPassword compares a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// TokenClaims are the decoded claims of a validated access token.
type TokenClaims struct {
	UserID    kernel.UserID
	TenantID  kernel.TenantID
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LoginResponse carries the issued token and its subject.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}
