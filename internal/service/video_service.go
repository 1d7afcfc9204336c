package service

import (
	"context"
	"encoding/json"

	"github.com/sweetspot260/sweetlife/internal/config"
	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/repository"
	"github.com/sweetspot260/sweetlife/pkg/logger"
	"github.com/sweetspot260/sweetlife/pkg/redis"
)

// videoService assembles the public video payload and owns the media counters
type videoService struct {
	statsRepo   repository.StatsRepository
	commentRepo repository.CommentRepository
	redisClient *redis.Client // optional, nil disables caching
	video       config.VideoConfig
	logger      *logger.Logger
}

// NewVideoService creates a new video service
func NewVideoService(statsRepo repository.StatsRepository, commentRepo repository.CommentRepository, redisClient *redis.Client, video config.VideoConfig, logger *logger.Logger) VideoService {
	return &videoService{
		statsRepo:   statsRepo,
		commentRepo: commentRepo,
		redisClient: redisClient,
		video:       video,
		logger:      logger,
	}
}

// GetVideo returns video metadata with live counters and approved comments.
// The assembled payload is cached in Redis on a short TTL when available.
func (s *videoService) GetVideo(ctx context.Context) (*domain.VideoPayload, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, s.redisClient.KeyBuilder.KeyVideoPayload())
		if err == nil {
			payload := &domain.VideoPayload{}
			if decodeErr := json.Unmarshal([]byte(cached), payload); decodeErr == nil {
				return payload, nil
			} else {
				s.logger.WithError(decodeErr).Warn("Discarding undecodable cached video payload")
			}
		} else if err != redis.Nil {
			s.logger.WithError(err).Warn("Video payload cache read failed")
		}
	}

	stats, err := s.statsRepo.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	payload := &domain.VideoPayload{
		Title:        s.video.Title,
		Description:  s.video.Description,
		URL:          s.video.URL,
		Poster:       s.video.Poster,
		Views:        stats.VideoViews,
		Downloads:    stats.VideoDownloads,
		AppDownloads: stats.AppDownloads,
		Comments:     comments,
		CommentCount: len(comments),
	}

	if s.redisClient != nil {
		if encoded, err := json.Marshal(payload); err == nil {
			if err := s.redisClient.Set(ctx, s.redisClient.KeyBuilder.KeyVideoPayload(), encoded, redis.TTLVideoPayload); err != nil {
				s.logger.WithError(err).Warn("Video payload cache write failed")
			}
		}
	}

	return payload, nil
}

// RecordWatch increments the view counter and returns the new total
func (s *videoService) RecordWatch(ctx context.Context) (int64, error) {
	stats, err := s.statsRepo.ApplyDelta(ctx, map[domain.StatField]int64{
		domain.FieldVideoViews: 1,
	})
	if err != nil {
		return 0, err
	}
	return stats.VideoViews, nil
}

// RecordDownload increments the video download counter and returns the new total
func (s *videoService) RecordDownload(ctx context.Context) (int64, error) {
	stats, err := s.statsRepo.ApplyDelta(ctx, map[domain.StatField]int64{
		domain.FieldVideoDownloads: 1,
	})
	if err != nil {
		return 0, err
	}
	return stats.VideoDownloads, nil
}

// RecordAppDownload increments the app download counter and returns the new total
func (s *videoService) RecordAppDownload(ctx context.Context) (int64, error) {
	stats, err := s.statsRepo.ApplyDelta(ctx, map[domain.StatField]int64{
		domain.FieldAppDownloads: 1,
	})
	if err != nil {
		return 0, err
	}
	return stats.AppDownloads, nil
}

// VideoURL returns the configured video file URL
func (s *videoService) VideoURL() string {
	return s.video.URL
}

// AppURL returns the configured app download URL
func (s *videoService) AppURL() string {
	return s.video.AppURL
}
