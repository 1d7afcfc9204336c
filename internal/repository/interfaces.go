package repository

import (
	"context"
	"time"

	"github.com/sweetspot260/sweetlife/internal/domain"
)

// VisitRepository defines the interface for the visit ledger
type VisitRepository interface {
	// Insert records a visit for (visitorKey, day). It returns true when a
	// new ledger entry was created and false when one already existed; a
	// duplicate insert is never an error.
	Insert(ctx context.Context, visitorKey string, day time.Time) (bool, error)

	// CountByDay returns the number of ledger entries for the given day
	CountByDay(ctx context.Context, day time.Time) (int64, error)
}

// StatsRepository defines the interface for the singleton counter aggregate
type StatsRepository interface {
	// GetOrInit returns the singleton stats row, creating an all-zero one
	// if none exists yet
	GetOrInit(ctx context.Context) (*domain.Stats, error)

	// ApplyDelta atomically adds the given deltas to the named fields and
	// returns the updated row
	ApplyDelta(ctx context.Context, deltas map[domain.StatField]int64) (*domain.Stats, error)

	// ResetFields atomically zeroes the named fields, leaving the rest
	// untouched. A missing singleton row is a no-op.
	ResetFields(ctx context.Context, fields ...domain.StatField) error
}

// CommentRepository defines the interface for comment storage
type CommentRepository interface {
	// Create stores a new unapproved comment
	Create(ctx context.Context, name, text string) (*domain.Comment, error)

	// ListApproved returns approved comments, most recent first
	ListApproved(ctx context.Context) ([]domain.Comment, error)

	// ListAll returns all comments, most recent first
	ListAll(ctx context.Context) ([]domain.Comment, error)

	// Approve marks the comment approved; NotFound error on unknown id
	Approve(ctx context.Context, id int64) error

	// Delete removes the comment
	Delete(ctx context.Context, id int64) error
}

// AdminRepository defines the interface for admin account storage
type AdminRepository interface {
	// GetByUsername retrieves an admin account, nil if absent
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)

	// Create stores a new admin account; Conflict error on duplicate username
	Create(ctx context.Context, admin *domain.Admin) error
}
