package service

import (
	"context"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/repository"
	"github.com/sweetspot260/sweetlife/pkg/logger"
	"github.com/sweetspot260/sweetlife/pkg/redis"
)

// statsService exposes the counter aggregate to the admin surface
type statsService struct {
	statsRepo   repository.StatsRepository
	redisClient *redis.Client // optional
	logger      *logger.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, redisClient *redis.Client, logger *logger.Logger) StatsService {
	return &statsService{
		statsRepo:   statsRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Get returns the singleton counter aggregate
func (s *statsService) Get(ctx context.Context) (*domain.Stats, error) {
	return s.statsRepo.GetOrInit(ctx)
}

// ResetAll zeroes every counter field
func (s *statsService) ResetAll(ctx context.Context) error {
	if err := s.statsRepo.ResetFields(ctx, domain.AllStatFields...); err != nil {
		return err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Delete(ctx, s.redisClient.KeyBuilder.KeyVideoPayload()); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate video payload cache")
		}
	}

	s.logger.Info("All counters reset")
	return nil
}
