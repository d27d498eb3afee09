package authinfra

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wesleysanjose/ocr/pkg/auth"
	"github.com/wesleysanjose/ocr/pkg/errx"
	"github.com/wesleysanjose/ocr/pkg/kernel"
)

// PostgresUserRepository reads user accounts from the users table.
type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) auth.UserRepository {
	return &PostgresUserRepository{db: db}
}

type userPersistence struct {
	ID           string    `db:"id"`
	TenantID     string    `db:"tenant_id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func toDomain(p userPersistence) *auth.User {
	return &auth.User{
		ID:           kernel.UserID(p.ID),
		TenantID:     kernel.TenantID(p.TenantID),
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: p.PasswordHash,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var row userPersistence
	query := `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`

	err := r.db.GetContext(ctx, &row, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound()
		}
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal)
	}
	return toDomain(row), nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*auth.User, error) {
	var row userPersistence
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound()
		}
		return nil, errx.Wrap(err, "failed to find user by ID", errx.TypeInternal)
	}
	return toDomain(row), nil
}
