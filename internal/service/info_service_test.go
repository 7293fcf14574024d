package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webapp-template/internal/domain"
)

func TestInfoService_Info(t *testing.T) {
	repo := newMockNoteRepo()
	service := NewInfoService(repo, "1.2.3", "s3")

	info, err := service.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.ServiceInfo{
		App:      "Django Demo",
		Status:   "running",
		Version:  "1.2.3",
		Database: "connected",
		Storage:  "s3",
	}, info)
}

func TestInfoService_DatabaseDown(t *testing.T) {
	repo := newMockNoteRepo()
	repo.pingErr = errors.New("connection refused")
	service := NewInfoService(repo, "dev", "local")

	_, err := service.Info(context.Background())
	assert.ErrorIs(t, err, repo.pingErr)
}

func TestHealthService_Check(t *testing.T) {
	ok := CheckerFunc(func(ctx context.Context) error { return nil })
	broken := CheckerFunc(func(ctx context.Context) error { return errors.New("bucket missing") })

	report := NewHealthService(zerolog.Nop()).
		Register("database", ok).
		Register("storage", ok).
		Check(context.Background())
	assert.True(t, report.Healthy())
	assert.Equal(t, map[string]string{"database": "working", "storage": "working"}, report.Checks)

	report = NewHealthService(zerolog.Nop()).
		Register("database", ok).
		Register("storage", broken).
		Check(context.Background())
	assert.False(t, report.Healthy())
	assert.Equal(t, "working", report.Checks["database"])
	assert.Equal(t, "unavailable: bucket missing", report.Checks["storage"])
}

func TestHealthService_CheckHasDeadline(t *testing.T) {
	var hadDeadline bool
	check := CheckerFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})

	NewHealthService(zerolog.Nop()).Register("database", check).Check(context.Background())
	assert.True(t, hadDeadline)
}
