package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"webapp-template/internal/domain"
	"webapp-template/internal/repository"
)

type mockNoteRepo struct {
	notes   map[int64]*domain.Note
	nextID  int64
	pingErr error
	err     error
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{
		notes: make(map[int64]*domain.Note),
	}
}

func (m *mockNoteRepo) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	note.ID = m.nextID
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) List(ctx context.Context) ([]*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	notes := make([]*domain.Note, 0, len(m.notes))
	for _, n := range m.notes {
		copied := *n
		notes = append(notes, &copied)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (m *mockNoteRepo) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	if n, exists := m.notes[id]; exists {
		copied := *n
		return &copied, nil
	}
	return nil, repository.ErrNoteNotFound
}

func (m *mockNoteRepo) Update(ctx context.Context, note *domain.Note) error {
	if _, exists := m.notes[note.ID]; !exists {
		return repository.ErrNoteNotFound
	}
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id int64) error {
	if _, exists := m.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func TestNoteService_Create(t *testing.T) {
	repo := newMockNoteRepo()
	service := NewNoteService(repo)
	service.now = func() time.Time {
		return time.Date(2024, 5, 1, 14, 0, 0, 123456789, time.FixedZone("CEST", 2*3600))
	}

	note, err := service.Create(context.Background(), domain.CreateNoteRequest{Title: "a", Content: "b"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if note.ID != 1 {
		t.Errorf("expected id 1, got %d", note.ID)
	}
	want := time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)
	if !note.CreatedAt.Equal(want) || note.CreatedAt.Location() != time.UTC {
		t.Errorf("expected created_at %v in UTC, got %v", want, note.CreatedAt)
	}
	if repo.notes[1].Content != "b" {
		t.Errorf("expected content to be stored, got %q", repo.notes[1].Content)
	}
}

func TestNoteService_CreateAssignsUniqueIDs(t *testing.T) {
	repo := newMockNoteRepo()
	service := NewNoteService(repo)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		note, err := service.Create(context.Background(), domain.CreateNoteRequest{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if seen[note.ID] {
			t.Fatalf("duplicate id %d", note.ID)
		}
		seen[note.ID] = true
	}
}

func TestNoteService_CreateRepositoryError(t *testing.T) {
	repo := newMockNoteRepo()
	repo.err = errors.New("disk full")
	service := NewNoteService(repo)

	if _, err := service.Create(context.Background(), domain.CreateNoteRequest{}); err == nil {
		t.Fatal("expected error from repository")
	}
}

func TestNoteService_List(t *testing.T) {
	repo := newMockNoteRepo()
	service := NewNoteService(repo)
	ctx := context.Background()

	list, err := service.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}

	service.Create(ctx, domain.CreateNoteRequest{Title: "n1"})
	service.Create(ctx, domain.CreateNoteRequest{Title: "n2"})

	list, err = service.List(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 notes, got %d", len(list))
	}
}

func TestNoteService_Update(t *testing.T) {
	repo := newMockNoteRepo()
	service := NewNoteService(repo)
	ctx := context.Background()

	note, _ := service.Create(ctx, domain.CreateNoteRequest{Title: "old", Content: "body"})

	newTitle := "new"
	updated, err := service.Update(ctx, note.ID, &domain.UpdateNoteRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("expected title %s, got %s", newTitle, updated.Title)
	}
	if updated.Content != "body" {
		t.Errorf("expected content to be kept, got %s", updated.Content)
	}
	if !updated.CreatedAt.Equal(note.CreatedAt) || updated.ID != note.ID {
		t.Error("expected id and created_at to be unchanged")
	}

	if _, err := service.Update(ctx, 99, &domain.UpdateNoteRequest{Title: &newTitle}); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteService_Delete(t *testing.T) {
	repo := newMockNoteRepo()
	service := NewNoteService(repo)
	ctx := context.Background()

	note, _ := service.Create(ctx, domain.CreateNoteRequest{Title: "to delete"})

	if err := service.Delete(ctx, note.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.GetByID(ctx, note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}
