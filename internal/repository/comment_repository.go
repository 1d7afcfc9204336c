package repository

import (
	"context"
	"fmt"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/pkg/database"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
)

// commentRepository handles comment storage with PostgreSQL
type commentRepository struct {
	db *database.PostgresDB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.PostgresDB) CommentRepository {
	return &commentRepository{
		db: db,
	}
}

// Create stores a new unapproved comment
func (r *commentRepository) Create(ctx context.Context, name, text string) (*domain.Comment, error) {
	query := `
		INSERT INTO comments (name, text, approved)
		VALUES ($1, $2, false)
		RETURNING id, name, text, approved, created_at, updated_at
	`

	comment := &domain.Comment{}
	err := r.db.Pool.QueryRow(ctx, query, name, text).Scan(
		&comment.ID,
		&comment.Name,
		&comment.Text,
		&comment.Approved,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListApproved returns approved comments, most recent first
func (r *commentRepository) ListApproved(ctx context.Context) ([]domain.Comment, error) {
	query := `
		SELECT id, name, text, approved, created_at, updated_at
		FROM comments
		WHERE approved = true
		ORDER BY created_at DESC
	`

	return r.list(ctx, query)
}

// ListAll returns all comments, most recent first
func (r *commentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	query := `
		SELECT id, name, text, approved, created_at, updated_at
		FROM comments
		ORDER BY created_at DESC
	`

	return r.list(ctx, query)
}

func (r *commentRepository) list(ctx context.Context, query string) ([]domain.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.Name,
			&comment.Text,
			&comment.Approved,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading comment rows: %w", err)
	}

	return comments, nil
}

// Approve marks the comment approved
func (r *commentRepository) Approve(ctx context.Context, id int64) error {
	query := `UPDATE comments SET approved = true, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to approve comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("comment not found")
	}

	return nil
}

// Delete removes the comment. Deleting an unknown id is a no-op.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
