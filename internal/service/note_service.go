package service

import (
	"context"
	"time"

	"webapp-template/internal/domain"
	"webapp-template/internal/metrics"
	"webapp-template/internal/repository"
)

type NoteService struct {
	repo repository.NoteRepository
	now  func() time.Time
}

func NewNoteService(repo repository.NoteRepository) *NoteService {
	return &NoteService{
		repo: repo,
		now:  time.Now,
	}
}

// Create stores a new note. created_at is taken here, in UTC and truncated
// to the microsecond precision both SQL backends keep.
func (s *NoteService) Create(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	note := &domain.Note{
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	metrics.RecordNoteCreated()
	return note, nil
}

func (s *NoteService) List(ctx context.Context) ([]*domain.Note, error) {
	return s.repo.List(ctx)
}

func (s *NoteService) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies an admin edit. id and created_at never change.
func (s *NoteService) Update(ctx context.Context, id int64, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
