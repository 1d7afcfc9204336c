package service

import (
	"context"
	"sync"
	"time"

	"github.com/sweetspot260/sweetlife/internal/domain"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
)

// fakeVisitRepo is an in-memory visit ledger enforcing the same uniqueness
// the database constraint provides
type fakeVisitRepo struct {
	mu      sync.Mutex
	entries map[string]int
	failing bool
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{entries: make(map[string]int)}
}

func visitKey(visitorKey string, day time.Time) string {
	return visitorKey + "|" + day.Format("2006-01-02")
}

func (f *fakeVisitRepo) Insert(ctx context.Context, visitorKey string, day time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return false, apperrors.NewStorageError("ledger unavailable", nil)
	}

	key := visitKey(visitorKey, day)
	if _, ok := f.entries[key]; ok {
		return false, nil
	}
	f.entries[key] = 1
	return true, nil
}

func (f *fakeVisitRepo) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return 0, apperrors.NewStorageError("ledger unavailable", nil)
	}

	suffix := "|" + day.Format("2006-01-02")
	var count int64
	for key := range f.entries {
		if len(key) >= len(suffix) && key[len(key)-len(suffix):] == suffix {
			count++
		}
	}
	return count, nil
}

// fakeStatsRepo is an in-memory counter aggregate with atomic updates
type fakeStatsRepo struct {
	mu      sync.Mutex
	stats   *domain.Stats
	failing bool
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{}
}

func (f *fakeStatsRepo) GetOrInit(ctx context.Context) (*domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, apperrors.NewStorageError("stats unavailable", nil)
	}

	if f.stats == nil {
		f.stats = &domain.Stats{ID: domain.StatsID}
	}
	copied := *f.stats
	return &copied, nil
}

func (f *fakeStatsRepo) ApplyDelta(ctx context.Context, deltas map[domain.StatField]int64) (*domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, apperrors.NewStorageError("stats unavailable", nil)
	}

	if f.stats == nil {
		f.stats = &domain.Stats{ID: domain.StatsID}
	}
	for field, delta := range deltas {
		f.apply(field, delta)
	}
	copied := *f.stats
	return &copied, nil
}

func (f *fakeStatsRepo) ResetFields(ctx context.Context, fields ...domain.StatField) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return apperrors.NewStorageError("stats unavailable", nil)
	}

	if f.stats == nil {
		return nil
	}
	for _, field := range fields {
		f.set(field, 0)
	}
	return nil
}

func (f *fakeStatsRepo) apply(field domain.StatField, delta int64) {
	switch field {
	case domain.FieldVideoViews:
		f.stats.VideoViews += delta
	case domain.FieldVideoDownloads:
		f.stats.VideoDownloads += delta
	case domain.FieldAppDownloads:
		f.stats.AppDownloads += delta
	case domain.FieldVisitsToday:
		f.stats.VisitsToday += delta
	case domain.FieldVisitsWeek:
		f.stats.VisitsWeek += delta
	case domain.FieldVisitsMonth:
		f.stats.VisitsMonth += delta
	}
}

func (f *fakeStatsRepo) set(field domain.StatField, value int64) {
	switch field {
	case domain.FieldVideoViews:
		f.stats.VideoViews = value
	case domain.FieldVideoDownloads:
		f.stats.VideoDownloads = value
	case domain.FieldAppDownloads:
		f.stats.AppDownloads = value
	case domain.FieldVisitsToday:
		f.stats.VisitsToday = value
	case domain.FieldVisitsWeek:
		f.stats.VisitsWeek = value
	case domain.FieldVisitsMonth:
		f.stats.VisitsMonth = value
	}
}

func (f *fakeStatsRepo) snapshot() domain.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stats == nil {
		return domain.Stats{ID: domain.StatsID}
	}
	return *f.stats
}

// fakeCommentRepo is an in-memory comment store
type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments []domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (f *fakeCommentRepo) Create(ctx context.Context, name, text string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	comment := domain.Comment{
		ID:        f.nextID,
		Name:      name,
		Text:      text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.nextID++
	f.comments = append(f.comments, comment)
	return &comment, nil
}

func (f *fakeCommentRepo) ListApproved(ctx context.Context) ([]domain.Comment, error) {
	return f.list(true), nil
}

func (f *fakeCommentRepo) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return f.list(false), nil
}

func (f *fakeCommentRepo) list(approvedOnly bool) []domain.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Comment, 0)
	// Newest first: entries are appended, so walk backwards
	for i := len(f.comments) - 1; i >= 0; i-- {
		if approvedOnly && !f.comments[i].Approved {
			continue
		}
		out = append(out, f.comments[i])
	}
	return out
}

func (f *fakeCommentRepo) Approve(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments[i].Approved = true
			return nil
		}
	}
	return apperrors.NewNotFoundError("comment not found")
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeAdminRepo is an in-memory admin account store enforcing unique usernames
type fakeAdminRepo struct {
	mu     sync.Mutex
	nextID int64
	admins map[string]domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{nextID: 1, admins: make(map[string]domain.Admin)}
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	admin, ok := f.admins[username]
	if !ok {
		return nil, nil
	}
	copied := admin
	return &copied, nil
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.admins[admin.Username]; ok {
		return apperrors.NewConflictError("username already exists")
	}
	admin.ID = f.nextID
	admin.CreatedAt = time.Now()
	f.nextID++
	f.admins[admin.Username] = *admin
	return nil
}
