package service

import (
	"context"

	"webapp-template/internal/domain"
	"webapp-template/internal/repository"
)

type InfoService struct {
	repo        repository.NoteRepository
	version     string
	storageMode string
}

// NewInfoService captures version and storage mode once; they are reported
// as they were at process start.
func NewInfoService(repo repository.NoteRepository, version, storageMode string) *InfoService {
	return &InfoService{
		repo:        repo,
		version:     version,
		storageMode: storageMode,
	}
}

// Info pings the database and reports the service status. A failed ping is
// returned as is; there is no degraded status.
func (s *InfoService) Info(ctx context.Context) (*domain.ServiceInfo, error) {
	if err := s.repo.Ping(ctx); err != nil {
		return nil, err
	}

	return &domain.ServiceInfo{
		App:      domain.AppName,
		Status:   domain.StatusRunning,
		Version:  s.version,
		Database: domain.DatabaseHealthy,
		Storage:  s.storageMode,
	}, nil
}
