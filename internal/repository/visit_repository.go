package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sweetspot260/sweetlife/pkg/database"
)

// visitRepository handles the visit ledger with PostgreSQL
type visitRepository struct {
	db *database.PostgresDB
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *database.PostgresDB) VisitRepository {
	return &visitRepository{
		db: db,
	}
}

// Insert records a visit for (visitorKey, day). The unique constraint on
// (visitor_key, day) makes concurrent first visits race safely: the losing
// insert hits ON CONFLICT DO NOTHING and reports zero rows.
func (r *visitRepository) Insert(ctx context.Context, visitorKey string, day time.Time) (bool, error) {
	query := `
		INSERT INTO visits (visitor_key, day, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (visitor_key, day) DO NOTHING
	`

	tag, err := r.db.Pool.Exec(ctx, query, visitorKey, day)
	if err != nil {
		return false, fmt.Errorf("failed to insert visit: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CountByDay returns the number of ledger entries for the given day
func (r *visitRepository) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM visits WHERE day = $1`

	var count int64
	err := r.db.Pool.QueryRow(ctx, query, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}

	return count, nil
}
