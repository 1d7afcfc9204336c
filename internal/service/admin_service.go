package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/repository"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// sessionTTL is how long an admin session token stays valid
const sessionTTL = 24 * time.Hour

// adminService owns admin accounts and session tokens. Passwords are bcrypt
// hashed; sessions are signed JWTs carried in a cookie.
type adminService struct {
	adminRepo     repository.AdminRepository
	logger        *logger.Logger
	adminSecret   string
	sessionSecret []byte
	now           func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repository.AdminRepository, logger *logger.Logger, adminSecret, sessionSecret string) AdminService {
	return &adminService{
		adminRepo:     adminRepo,
		logger:        logger,
		adminSecret:   adminSecret,
		sessionSecret: []byte(sessionSecret),
		now:           time.Now,
	}
}

// Register creates a new admin account. The shared secret gates the flow;
// duplicate usernames surface as Conflict from the repository.
func (s *adminService) Register(ctx context.Context, username, password, secret string) error {
	if secret != s.adminSecret || s.adminSecret == "" {
		return apperrors.NewUnauthorizedError("Invalid secret code!")
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperrors.NewValidationError("Missing username or password", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.WithField("username", username).Info("Admin account created")
	return nil
}

// Login verifies credentials and returns a signed session token
func (s *adminService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", apperrors.NewUnauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorizedError("Invalid username or password")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	s.logger.WithField("username", admin.Username).Info("Admin logged in")
	return token, nil
}

// ParseSession verifies a session token and returns the admin username
func (s *adminService) ParseSession(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", apperrors.NewUnauthorizedError("Invalid or expired session")
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.NewUnauthorizedError("Invalid or expired session")
	}

	return claims.Subject, nil
}
