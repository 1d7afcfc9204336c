package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/pkg/database"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks
const uniqueViolation = "23505"

// adminRepository handles admin account storage with PostgreSQL
type adminRepository struct {
	db *database.PostgresDB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *database.PostgresDB) AdminRepository {
	return &adminRepository{
		db: db,
	}
}

// GetByUsername retrieves an admin account by username, nil if absent
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = $1
	`

	admin := &domain.Admin{}
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}

	return admin, nil
}

// Create stores a new admin account
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, admin.Username, admin.PasswordHash).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.NewConflictError("username already exists")
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}
