package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"webapp-template/internal/config"
	"webapp-template/internal/domain"
	"webapp-template/pkg/hash"
	"webapp-template/pkg/jwt"
)

const testAdminPassword = "correct-horse-battery"

func newTestAdminService(t *testing.T) *AdminService {
	t.Helper()
	passwordHash, err := hash.Hash(testAdminPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewAdminService(config.AdminConfig{
		Username:     "admin",
		PasswordHash: passwordHash,
		SessionTTL:   time.Hour,
	}, "test-secret")
}

func TestAdminService_Login(t *testing.T) {
	service := newTestAdminService(t)

	session, err := service.Login(context.Background(), &domain.AdminLoginRequest{Username: "admin", Password: testAdminPassword})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a token")
	}
	if time.Until(session.ExpiresAt) > time.Hour || time.Until(session.ExpiresAt) < 59*time.Minute {
		t.Errorf("unexpected expiry %v", session.ExpiresAt)
	}

	user, err := service.Authenticate(session.Token)
	if err != nil {
		t.Fatalf("expected token to authenticate, got %v", err)
	}
	if user != "admin" {
		t.Errorf("expected admin, got %s", user)
	}
}

func TestAdminService_LoginRejectsBadCredentials(t *testing.T) {
	service := newTestAdminService(t)

	tests := []struct {
		name string
		req  domain.AdminLoginRequest
	}{
		{name: "wrong password", req: domain.AdminLoginRequest{Username: "admin", Password: "nope-nope-nope"}},
		{name: "wrong username", req: domain.AdminLoginRequest{Username: "root", Password: testAdminPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), &tt.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAdminService_Disabled(t *testing.T) {
	service := NewAdminService(config.AdminConfig{SessionTTL: time.Hour}, "test-secret")

	if service.Enabled() {
		t.Fatal("expected admin to be disabled")
	}
	if _, err := service.Login(context.Background(), &domain.AdminLoginRequest{Username: "admin", Password: "x"}); !errors.Is(err, ErrAdminDisabled) {
		t.Errorf("expected ErrAdminDisabled, got %v", err)
	}
	if _, err := service.Authenticate("anything"); !errors.Is(err, ErrAdminDisabled) {
		t.Errorf("expected ErrAdminDisabled, got %v", err)
	}
}

func TestAdminService_AuthenticateRejectsOtherUsers(t *testing.T) {
	service := newTestAdminService(t)

	token, err := jwt.GenerateToken("someone-else", time.Hour, "test-secret")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := service.Authenticate(token); err == nil {
		t.Error("expected token for a different user to be rejected")
	}
}
