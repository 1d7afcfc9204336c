package domain

import (
	"time"
)

// Comment is a visitor comment awaiting moderator approval
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Text      string    `json:"text" db:"text"`
	Approved  bool      `json:"approved" db:"approved"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommentSummary aggregates moderation counts for the admin dashboard
type CommentSummary struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}
