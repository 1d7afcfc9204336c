package service

import (
	"context"
	"time"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/repository"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// trackTimeout bounds the two persistence round-trips per tracked request
const trackTimeout = 3 * time.Second

// trackerService deduplicates visits against the ledger and keeps the
// rolling visit counters consistent
type trackerService struct {
	visitRepo repository.VisitRepository
	statsRepo repository.StatsRepository
	logger    *logger.Logger
	now       func() time.Time
}

// NewTrackerService creates a new tracker service
func NewTrackerService(visitRepo repository.VisitRepository, statsRepo repository.StatsRepository, logger *logger.Logger) TrackerService {
	return &trackerService{
		visitRepo: visitRepo,
		statsRepo: statsRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Track records at most one visit per (visitor, day). The ledger's unique
// constraint decides the winner under concurrent first visits; the counters
// are only bumped when this call actually created the ledger entry, so they
// move at most once per (visitor, day).
func (s *trackerService) Track(ctx context.Context, visitorKey string) {
	ctx, cancel := context.WithTimeout(ctx, trackTimeout)
	defer cancel()

	if visitorKey == "" {
		visitorKey = domain.UnknownVisitor
	}

	day := domain.Midnight(s.now())

	created, err := s.visitRepo.Insert(ctx, visitorKey, day)
	if err != nil {
		s.logger.WithError(err).WithField("visitor", visitorKey).Error("Visit tracking failed")
		return
	}
	if !created {
		// Re-visit on the same day, nothing to count
		return
	}

	_, err = s.statsRepo.ApplyDelta(ctx, map[domain.StatField]int64{
		domain.FieldVisitsToday: 1,
		domain.FieldVisitsWeek:  1,
		domain.FieldVisitsMonth: 1,
	})
	if err != nil {
		s.logger.WithError(err).WithField("visitor", visitorKey).Error("Visit counter update failed")
		return
	}

	s.logger.WithField("visitor", visitorKey).Debug("Visit recorded")
}

// CountToday returns the number of ledger entries for the current day
func (s *trackerService) CountToday(ctx context.Context) (int64, error) {
	return s.visitRepo.CountByDay(ctx, domain.Midnight(s.now()))
}
