package config

import "time"

// AuthConfig configures token issuance.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  getEnvDuration("JWT_TOKEN_TTL", 8*time.Hour),
		Issuer:    getEnv("JWT_ISSUER", "ocr-review"),
	}
}
