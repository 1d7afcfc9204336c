package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/repository"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// resetTimeout bounds each reset's store round-trip
const resetTimeout = 10 * time.Second

// ResetScheduler zeroes the rolling visit counters on day, week and month
// boundaries. Each trigger runs as its own goroutine sharing only the stats
// repository; a failed reset is logged and skipped, never retried.
type ResetScheduler struct {
	statsRepo repository.StatsRepository
	logger    *logger.Logger
	stop      chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	now       func() time.Time
}

// NewResetScheduler creates a new reset scheduler
func NewResetScheduler(statsRepo repository.StatsRepository, logger *logger.Logger) *ResetScheduler {
	return &ResetScheduler{
		statsRepo: statsRepo,
		logger:    logger,
		stop:      make(chan struct{}),
		now:       time.Now,
	}
}

// Start launches the three boundary triggers
func (s *ResetScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true

	s.launch("daily", NextDaily, domain.FieldVisitsToday)
	s.launch("weekly", NextWeekly, domain.FieldVisitsWeek)
	s.launch("monthly", NextMonthly, domain.FieldVisitsMonth)

	s.logger.Info("Reset scheduler started")
}

// Stop signals all triggers to exit and waits for them
func (s *ResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.isRunning = false

	close(s.stop)
	s.wg.Wait()
	s.logger.Info("Reset scheduler stopped")
}

// launch runs one trigger loop. Each iteration sleeps until the next
// boundary, fires exactly once, then recomputes. No catch-up: boundaries
// crossed while the process is down are simply skipped.
func (s *ResetScheduler) launch(name string, next func(time.Time) time.Time, field domain.StatField) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			boundary := next(s.now())
			timer := time.NewTimer(boundary.Sub(s.now()))

			select {
			case <-timer.C:
				s.fire(name, field)
			case <-s.stop:
				timer.Stop()
				return
			}
		}
	}()
}

// fire resets one counter field, logging and swallowing store failures so
// one broken trigger never affects the others
func (s *ResetScheduler) fire(name string, field domain.StatField) {
	ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
	defer cancel()

	if err := s.statsRepo.ResetFields(ctx, field); err != nil {
		s.logger.WithError(err).WithField("trigger", name).Error("Counter reset failed")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"trigger": name,
		"field":   string(field),
	}).Info("Counter reset")
}

// NextDaily returns the first midnight strictly after t
func NextDaily(t time.Time) time.Time {
	return domain.Midnight(t).AddDate(0, 0, 1)
}

// NextWeekly returns the first Monday midnight strictly after t
func NextWeekly(t time.Time) time.Time {
	d := domain.Midnight(t).AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NextMonthly returns midnight of the first day of the month after t
func NextMonthly(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}
