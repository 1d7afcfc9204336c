package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// memStatsRepo tracks counter values and reset calls
type memStatsRepo struct {
	mu     sync.Mutex
	values map[domain.StatField]int64
	resets []domain.StatField
}

func newMemStatsRepo() *memStatsRepo {
	return &memStatsRepo{values: map[domain.StatField]int64{
		domain.FieldVisitsToday: 5,
		domain.FieldVisitsWeek:  12,
		domain.FieldVisitsMonth: 40,
	}}
}

func (m *memStatsRepo) GetOrInit(ctx context.Context) (*domain.Stats, error) {
	return &domain.Stats{ID: domain.StatsID}, nil
}

func (m *memStatsRepo) ApplyDelta(ctx context.Context, deltas map[domain.StatField]int64) (*domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for f, d := range deltas {
		m.values[f] += d
	}
	return &domain.Stats{ID: domain.StatsID}, nil
}

func (m *memStatsRepo) ResetFields(ctx context.Context, fields ...domain.StatField) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range fields {
		m.values[f] = 0
		m.resets = append(m.resets, f)
	}
	return nil
}

func (m *memStatsRepo) value(f domain.StatField) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[f]
}

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestNextDaily(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid afternoon rolls to next midnight",
			now:  date(2025, time.November, 7, 15),
			want: date(2025, time.November, 8, 0),
		},
		{
			name: "exactly midnight rolls a full day",
			now:  date(2025, time.November, 7, 0),
			want: date(2025, time.November, 8, 0),
		},
		{
			name: "month boundary",
			now:  date(2025, time.November, 30, 23),
			want: date(2025, time.December, 1, 0),
		},
		{
			name: "year boundary",
			now:  date(2025, time.December, 31, 23),
			want: date(2026, time.January, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDaily(tt.now))
		})
	}
}

func TestNextWeekly(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			// 2025-11-07 is a Friday
			name: "friday rolls to coming monday",
			now:  date(2025, time.November, 7, 15),
			want: date(2025, time.November, 10, 0),
		},
		{
			// 2025-11-10 is a Monday
			name: "monday midnight rolls a full week",
			now:  date(2025, time.November, 10, 0),
			want: date(2025, time.November, 17, 0),
		},
		{
			name: "sunday night rolls to next midnight",
			now:  date(2025, time.November, 9, 23),
			want: date(2025, time.November, 10, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextWeekly(tt.now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestNextMonthly(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid month rolls to first of next month",
			now:  date(2025, time.November, 7, 15),
			want: date(2025, time.December, 1, 0),
		},
		{
			name: "first of month rolls a full month",
			now:  date(2025, time.November, 1, 0),
			want: date(2025, time.December, 1, 0),
		},
		{
			name: "december rolls into january",
			now:  date(2025, time.December, 15, 8),
			want: date(2026, time.January, 1, 0),
		},
		{
			name: "january 31 rolls to february 1",
			now:  date(2026, time.January, 31, 12),
			want: date(2026, time.February, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonthly(tt.now))
		})
	}
}

func TestFire_ResetsOnlyItsField(t *testing.T) {
	repo := newMemStatsRepo()
	s := NewResetScheduler(repo, logger.NewNop())

	s.fire("daily", domain.FieldVisitsToday)

	assert.Equal(t, int64(0), repo.value(domain.FieldVisitsToday))
	assert.Equal(t, int64(12), repo.value(domain.FieldVisitsWeek))
	assert.Equal(t, int64(40), repo.value(domain.FieldVisitsMonth))

	s.fire("weekly", domain.FieldVisitsWeek)

	assert.Equal(t, int64(0), repo.value(domain.FieldVisitsWeek))
	assert.Equal(t, int64(40), repo.value(domain.FieldVisitsMonth))
}

func TestScheduler_StartStop(t *testing.T) {
	repo := newMemStatsRepo()
	s := NewResetScheduler(repo, logger.NewNop())

	s.Start()
	s.Start() // second start is a no-op

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}

	// No boundary could have been crossed during the test
	require.Empty(t, repo.resets)
}

func TestScheduler_TriggerFiresAtBoundary(t *testing.T) {
	repo := newMemStatsRepo()
	s := NewResetScheduler(repo, logger.NewNop())

	// Pin the clock just before midnight so the daily trigger fires almost
	// immediately after Start
	base := date(2025, time.November, 7, 0).Add(24*time.Hour - 25*time.Millisecond)
	s.now = func() time.Time { return base }

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return repo.value(domain.FieldVisitsToday) == 0
	}, 2*time.Second, 10*time.Millisecond, "daily reset should fire at the boundary")

	assert.Equal(t, int64(12), repo.value(domain.FieldVisitsWeek))
	assert.Equal(t, int64(40), repo.value(domain.FieldVisitsMonth))
}
