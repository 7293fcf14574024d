package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"webapp-template/internal/domain"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteRepository interface {
	// Ping performs a no-op round trip to the backing store.
	Ping(ctx context.Context) error
	// Create stores note and assigns its ID.
	Create(ctx context.Context, note *domain.Note) error
	List(ctx context.Context) ([]*domain.Note, error)
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id int64) error
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Ping(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}
	return nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := r.db.Rebind(`
		INSERT INTO demo_note (title, content, created_at)
		VALUES (?, ?, ?)
		RETURNING id`)

	if err := r.db.QueryRowxContext(ctx, query, note.Title, note.Content, note.CreatedAt).Scan(&note.ID); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *noteRepository) List(ctx context.Context) ([]*domain.Note, error) {
	notes := make([]*domain.Note, 0)
	if err := r.db.SelectContext(ctx, &notes, `
		SELECT id, title, content, created_at
		FROM demo_note
		ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	query := r.db.Rebind(`
		SELECT id, title, content, created_at
		FROM demo_note
		WHERE id = ?`)

	var note domain.Note
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	query := r.db.Rebind(`UPDATE demo_note SET title = ?, content = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, note.Title, note.Content, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return expectOneRow(res)
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM demo_note WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}
