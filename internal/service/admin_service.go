package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"webapp-template/internal/config"
	"webapp-template/internal/domain"
	"webapp-template/pkg/hash"
	"webapp-template/pkg/jwt"
)

// AdminService authenticates the single configured superuser.
type AdminService struct {
	username     string
	passwordHash string
	secret       string
	sessionTTL   time.Duration
}

func NewAdminService(cfg config.AdminConfig, secret string) *AdminService {
	return &AdminService{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		secret:       secret,
		sessionTTL:   cfg.SessionTTL,
	}
}

func (s *AdminService) Enabled() bool {
	return s.username != "" && s.passwordHash != ""
}

func (s *AdminService) Login(ctx context.Context, req *domain.AdminLoginRequest) (*domain.AdminSession, error) {
	if !s.Enabled() {
		return nil, ErrAdminDisabled
	}

	// the hash is compared even for an unknown username
	userMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	if err := hash.Compare(s.passwordHash, req.Password); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify admin password: %w", err)
	}
	if !userMatch {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(s.username, s.sessionTTL, s.secret)
	if err != nil {
		return nil, err
	}

	return &domain.AdminSession{
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionTTL).UTC(),
	}, nil
}

// Authenticate validates a session token and returns the admin username.
func (s *AdminService) Authenticate(token string) (string, error) {
	if !s.Enabled() {
		return "", ErrAdminDisabled
	}

	claims, err := jwt.ValidateToken(token, s.secret)
	if err != nil {
		return "", err
	}
	if claims.UserID != s.username {
		return "", jwt.ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *AdminService) SessionTTL() time.Duration {
	return s.sessionTTL
}
