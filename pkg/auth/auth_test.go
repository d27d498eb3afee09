package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/wesleysanjose/ocr/pkg/auth"
	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/kernel"
)

func testUser(t *testing.T) *auth.User {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	return &auth.User{
		ID:           kernel.UserID("user-1"),
		TenantID:     kernel.TenantID("tenant-1"),
		Email:        "reviewer@example.com",
		Name:         "Reviewer",
		PasswordHash: hash,
		IsActive:     true,
	}
}

type fakeUserRepo struct {
	user *auth.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, auth.ErrUserNotFound()
}

func (f *fakeUserRepo) FindByID(_ context.Context, id kernel.UserID) (*auth.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, auth.ErrUserNotFound()
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := auth.NewJWTService("test-secret", time.Hour, "test")
	user := testUser(t)

	token, issued, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatal(err)
	}
	if issued.ExpiresAt.Before(time.Now()) {
		t.Fatal("token already expired")
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != user.ID || claims.TenantID != user.TenantID {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Email != user.Email {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestJWTService_RejectsForeignToken(t *testing.T) {
	issuer := auth.NewJWTService("secret-a", time.Hour, "test")
	validator := auth.NewJWTService("secret-b", time.Hour, "test")

	token, _, err := issuer.GenerateAccessToken(testUser(t))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := validator.ValidateAccessToken(token); !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := auth.NewJWTService("test-secret", time.Hour, "test")

	if _, err := svc.ValidateAccessToken("not-a-token"); !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	user := testUser(t)
	svc := auth.NewAuthService(&fakeUserRepo{user: user}, auth.NewJWTService("test-secret", time.Hour, "test"))

	resp, err := svc.Login(context.Background(), "Reviewer@Example.com ", "s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken == "" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.User.ID != user.ID {
		t.Fatalf("unexpected user %+v", resp.User)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := auth.NewAuthService(&fakeUserRepo{user: testUser(t)}, auth.NewJWTService("test-secret", time.Hour, "test"))

	_, err := svc.Login(context.Background(), "reviewer@example.com", "wrong")
	if !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestAuthService_LoginUnknownEmailSameError(t *testing.T) {
	svc := auth.NewAuthService(&fakeUserRepo{}, auth.NewJWTService("test-secret", time.Hour, "test"))

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestAuthService_LoginInactiveUser(t *testing.T) {
	user := testUser(t)
	user.IsActive = false
	svc := auth.NewAuthService(&fakeUserRepo{user: user}, auth.NewJWTService("test-secret", time.Hour, "test"))

	_, err := svc.Login(context.Background(), "reviewer@example.com", "s3cret-pass")
	if !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}
