package handler

import (
	"context"

	"github.com/sweetspot260/sweetlife/internal/domain"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
)

// fakeVideoService backs the video handler with in-memory counters
type fakeVideoService struct {
	views        int64
	downloads    int64
	appDownloads int64
	payload      *domain.VideoPayload
	err          error
}

func (f *fakeVideoService) GetVideo(ctx context.Context) (*domain.VideoPayload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeVideoService) RecordWatch(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.views++
	return f.views, nil
}

func (f *fakeVideoService) RecordDownload(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.downloads++
	return f.downloads, nil
}

func (f *fakeVideoService) RecordAppDownload(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.appDownloads++
	return f.appDownloads, nil
}

func (f *fakeVideoService) VideoURL() string { return "/frontend/promo.mp4" }

func (f *fakeVideoService) AppURL() string { return "https://app.example.com" }

// fakeCommentService validates like the real service but stores in memory
type fakeCommentService struct {
	comments []domain.Comment
	nextID   int64
}

func (f *fakeCommentService) Submit(ctx context.Context, name, text, clientIP string) error {
	if name == "" || text == "" {
		return apperrors.NewValidationError("Missing name or comment", nil)
	}
	f.nextID++
	f.comments = append(f.comments, domain.Comment{ID: f.nextID, Name: name, Text: text})
	return nil
}

func (f *fakeCommentService) ListApproved(ctx context.Context) ([]domain.Comment, error) {
	var approved []domain.Comment
	for _, c := range f.comments {
		if c.Approved {
			approved = append(approved, c)
		}
	}
	return approved, nil
}

func (f *fakeCommentService) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return append([]domain.Comment(nil), f.comments...), nil
}

func (f *fakeCommentService) Approve(ctx context.Context, id int64) error {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments[i].Approved = true
			return nil
		}
	}
	return apperrors.NewNotFoundError("Comment not found")
}

func (f *fakeCommentService) Delete(ctx context.Context, id int64) error {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeTracker counts distinct visitor keys per call site
type fakeTracker struct {
	keys []string
}

func (f *fakeTracker) Track(ctx context.Context, visitorKey string) {
	f.keys = append(f.keys, visitorKey)
}

func (f *fakeTracker) CountToday(ctx context.Context) (int64, error) {
	seen := make(map[string]struct{})
	for _, k := range f.keys {
		seen[k] = struct{}{}
	}
	return int64(len(seen)), nil
}

// fakeAdminService scripts register/login outcomes
type fakeAdminService struct {
	registerErr error
	loginToken  string
	loginErr    error
}

func (f *fakeAdminService) Register(ctx context.Context, username, password, secret string) error {
	return f.registerErr
}

func (f *fakeAdminService) Login(ctx context.Context, username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAdminService) ParseSession(token string) (string, error) {
	if token == f.loginToken && token != "" {
		return "admin", nil
	}
	return "", apperrors.NewUnauthorizedError("Invalid or expired session")
}

// fakeStatsService hands back a canned aggregate
type fakeStatsService struct {
	stats    *domain.Stats
	resetErr error
	resets   int
}

func (f *fakeStatsService) Get(ctx context.Context) (*domain.Stats, error) {
	return f.stats, nil
}

func (f *fakeStatsService) ResetAll(ctx context.Context) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resets++
	return nil
}
