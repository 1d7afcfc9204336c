package service

import (
	"context"

	"github.com/sweetspot260/sweetlife/internal/domain"
)

// TrackerService records at most one visit per (visitor, day)
type TrackerService interface {
	// Track deduplicates by ledger lookup and bumps the visit counters on a
	// first visit. Failures are logged and swallowed; tracking must never
	// block the response.
	Track(ctx context.Context, visitorKey string)

	// CountToday returns the number of ledger entries for the current day
	CountToday(ctx context.Context) (int64, error)
}

// VideoService serves the public video payload and its media counters
type VideoService interface {
	// GetVideo returns video metadata with live counters and approved comments
	GetVideo(ctx context.Context) (*domain.VideoPayload, error)

	// RecordWatch increments the view counter and returns the new total
	RecordWatch(ctx context.Context) (int64, error)

	// RecordDownload increments the video download counter and returns the new total
	RecordDownload(ctx context.Context) (int64, error)

	// RecordAppDownload increments the app download counter and returns the new total
	RecordAppDownload(ctx context.Context) (int64, error)

	// VideoURL returns the configured video file URL
	VideoURL() string

	// AppURL returns the configured app download URL
	AppURL() string
}

// CommentService owns the moderation queue
type CommentService interface {
	// Submit validates and stores a new unapproved comment
	Submit(ctx context.Context, name, text, clientIP string) error

	// ListApproved returns approved comments, most recent first
	ListApproved(ctx context.Context) ([]domain.Comment, error)

	// ListAll returns all comments, most recent first
	ListAll(ctx context.Context) ([]domain.Comment, error)

	// Approve marks a comment approved
	Approve(ctx context.Context, id int64) error

	// Delete removes a comment
	Delete(ctx context.Context, id int64) error
}

// AdminService owns admin accounts and session tokens
type AdminService interface {
	// Register creates a new admin account gated by the shared secret
	Register(ctx context.Context, username, password, secret string) error

	// Login verifies credentials and returns a signed session token
	Login(ctx context.Context, username, password string) (string, error)

	// ParseSession verifies a session token and returns the admin username
	ParseSession(token string) (string, error)
}

// StatsService exposes the counter aggregate to the admin surface
type StatsService interface {
	// Get returns the singleton counter aggregate
	Get(ctx context.Context) (*domain.Stats, error)

	// ResetAll zeroes every counter field
	ResetAll(ctx context.Context) error
}
