package auth

import (
	"net/http"

	"github.com/wesleysanjose/ocr/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid email or password")
	CodeUnauthorized       = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeTokenGeneration    = ErrRegistry.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
	CodeUserNotFound       = ErrRegistry.Register("USER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeUserInactive       = ErrRegistry.Register("USER_INACTIVE", errx.TypeAuthorization, http.StatusForbidden, "User account is deactivated")
)

func ErrInvalidCredentials() *errx.Error { return ErrRegistry.New(CodeInvalidCredentials) }
func ErrUnauthorized() *errx.Error       { return ErrRegistry.New(CodeUnauthorized) }
func ErrInvalidToken() *errx.Error       { return ErrRegistry.New(CodeInvalidToken) }
func ErrTokenGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenGeneration)
}
func ErrUserNotFound() *errx.Error { return ErrRegistry.New(CodeUserNotFound) }
func ErrUserInactive() *errx.Error { return ErrRegistry.New(CodeUserInactive) }
