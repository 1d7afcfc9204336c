package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/pkg/database"
)

// statsRepository handles the singleton counter aggregate with PostgreSQL
type statsRepository struct {
	db *database.PostgresDB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.PostgresDB) StatsRepository {
	return &statsRepository{
		db: db,
	}
}

const statsColumns = `id, video_views, video_downloads, app_downloads,
	       visits_today, visits_week, visits_month, updated_at`

// GetOrInit returns the singleton stats row, creating an all-zero one if
// none exists. The fixed id plus ON CONFLICT DO NOTHING keeps creation
// race-free under concurrent first writers.
func (r *statsRepository) GetOrInit(ctx context.Context) (*domain.Stats, error) {
	seed := `INSERT INTO stats (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.Pool.Exec(ctx, seed, domain.StatsID); err != nil {
		return nil, fmt.Errorf("failed to seed stats row: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM stats WHERE id = $1`, statsColumns)

	stats := &domain.Stats{}
	err := r.db.Pool.QueryRow(ctx, query, domain.StatsID).Scan(
		&stats.ID,
		&stats.VideoViews,
		&stats.VideoDownloads,
		&stats.AppDownloads,
		&stats.VisitsToday,
		&stats.VisitsWeek,
		&stats.VisitsMonth,
		&stats.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats row: %w", err)
	}

	return stats, nil
}

// ApplyDelta atomically adds the given deltas to the named fields in a
// single UPDATE, so concurrent handlers never lose increments.
func (r *statsRepository) ApplyDelta(ctx context.Context, deltas map[domain.StatField]int64) (*domain.Stats, error) {
	if len(deltas) == 0 {
		return r.GetOrInit(ctx)
	}

	// Seed the singleton first so the UPDATE always has a row to hit
	seed := `INSERT INTO stats (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.Pool.Exec(ctx, seed, domain.StatsID); err != nil {
		return nil, fmt.Errorf("failed to seed stats row: %w", err)
	}

	fields := make([]domain.StatField, 0, len(deltas))
	for f := range deltas {
		if !f.Valid() {
			return nil, fmt.Errorf("unknown stat field %q", f)
		}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	sets := make([]string, 0, len(fields))
	args := []interface{}{domain.StatsID}
	for _, f := range fields {
		args = append(args, deltas[f])
		sets = append(sets, fmt.Sprintf("%s = %s + $%d", f, f, len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE stats
		SET %s, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, strings.Join(sets, ", "), statsColumns)

	stats := &domain.Stats{}
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&stats.ID,
		&stats.VideoViews,
		&stats.VideoDownloads,
		&stats.AppDownloads,
		&stats.VisitsToday,
		&stats.VisitsWeek,
		&stats.VisitsMonth,
		&stats.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply stats delta: %w", err)
	}

	return stats, nil
}

// ResetFields atomically zeroes the named fields. When no singleton row
// exists yet there is nothing to reset and the UPDATE affects zero rows.
func (r *statsRepository) ResetFields(ctx context.Context, fields ...domain.StatField) error {
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.Valid() {
			return fmt.Errorf("unknown stat field %q", f)
		}
		sets = append(sets, fmt.Sprintf("%s = 0", f))
	}

	query := fmt.Sprintf(`
		UPDATE stats
		SET %s, updated_at = now()
		WHERE id = $1
	`, strings.Join(sets, ", "))

	if _, err := r.db.Pool.Exec(ctx, query, domain.StatsID); err != nil {
		return fmt.Errorf("failed to reset stats fields: %w", err)
	}

	return nil
}
