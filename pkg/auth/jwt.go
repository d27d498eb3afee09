package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// JWTService implements TokenService with HS256-signed JWTs.
type JWTService struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
}

func NewJWTService(secretKey string, tokenTTL time.Duration, issuer string) *JWTService {
	if tokenTTL == 0 {
		tokenTTL = 8 * time.Hour
	}
	if issuer == "" {
		issuer = "ocr-review"
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		issuer:    issuer,
	}
}

type jwtClaims struct {
	UserID   kernel.UserID   `json:"user_id"`
	TenantID kernel.TenantID `json:"tenant_id"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	jwt.RegisteredClaims
}

func (j *JWTService) GenerateAccessToken(user *User) (string, *TokenClaims, error) {
	now := time.Now()
	expiresAt := now.Add(j.tokenTTL)

	claims := jwtClaims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", nil, ErrTokenGenerationFailed().WithDetail("error", err.Error())
	}

	return signed, &TokenClaims{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		Name:      user.Name,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

func (j *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken().WithDetail("error", err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken()
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok {
		return nil, ErrInvalidToken().WithDetail("error", "invalid claims type")
	}

	return &TokenClaims{
		UserID:    claims.UserID,
		TenantID:  claims.TenantID,
		Email:     claims.Email,
		Name:      claims.Name,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
