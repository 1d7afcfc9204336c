package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/repository"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
	"github.com/sweetspot260/sweetlife/pkg/redis"
)

// submitRateLimit caps comment submissions per hashed IP per window
const submitRateLimit = 5

// commentService owns the moderation queue
type commentService struct {
	commentRepo repository.CommentRepository
	redisClient *redis.Client // optional, nil disables rate limiting and cache invalidation
	logger      *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, redisClient *redis.Client, logger *logger.Logger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Submit validates and stores a new unapproved comment
func (s *commentService) Submit(ctx context.Context, name, text, clientIP string) error {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if name == "" || text == "" {
		return apperrors.NewValidationError("Missing name or comment", nil)
	}

	if err := s.checkRateLimit(ctx, clientIP); err != nil {
		return err
	}

	comment, err := s.commentRepo.Create(ctx, name, text)
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"comment_id": comment.ID,
		"name":       comment.Name,
	}).Info("Comment submitted for approval")

	return nil
}

// ListApproved returns approved comments, most recent first
func (s *commentService) ListApproved(ctx context.Context) ([]domain.Comment, error) {
	return s.commentRepo.ListApproved(ctx)
}

// ListAll returns all comments, most recent first
func (s *commentService) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return s.commentRepo.ListAll(ctx)
}

// Approve marks a comment approved and drops the cached public payload so
// the comment shows up without waiting out the TTL
func (s *commentService) Approve(ctx context.Context, id int64) error {
	if err := s.commentRepo.Approve(ctx, id); err != nil {
		return err
	}
	s.invalidatePayloadCache(ctx)
	return nil
}

// Delete removes a comment
func (s *commentService) Delete(ctx context.Context, id int64) error {
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePayloadCache(ctx)
	return nil
}

// checkRateLimit enforces the per-IP submission cap when Redis is available
func (s *commentService) checkRateLimit(ctx context.Context, clientIP string) error {
	if s.redisClient == nil || clientIP == "" {
		return nil
	}

	key := s.redisClient.KeyBuilder.KeyCommentRateLimit(hashIP(clientIP))

	count, err := s.redisClient.Incr(ctx, key)
	if err != nil {
		// Rate limiting is best effort, never reject on infrastructure failure
		s.logger.WithError(err).Warn("Comment rate limit check failed")
		return nil
	}

	if count == 1 {
		if err := s.redisClient.Expire(ctx, key, redis.TTLCommentRateLimit); err != nil {
			s.logger.WithError(err).Warn("Failed to set comment rate limit expiry")
		}
	}

	if count > submitRateLimit {
		return apperrors.NewRateLimitError("Too many comments, try again later")
	}

	return nil
}

func (s *commentService) invalidatePayloadCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Delete(ctx, s.redisClient.KeyBuilder.KeyVideoPayload()); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate video payload cache")
	}
}

// hashIP hashes an IP address for rate limit keys, keeping raw addresses out
// of Redis
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return fmt.Sprintf("%x", sum)[:16]
}
