package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kivik/kivik/v4"

	"webapp-template/internal/domain"
)

const (
	noteDocPrefix      = "note:"
	noteCounterDocID   = "counter:demo_note"
	maxCounterAttempts = 10
)

var errCounterContention = errors.New("could not allocate note id: too many concurrent writers")

type couchNote struct {
	ID        string    `json:"_id"`
	Rev       string    `json:"_rev,omitempty"`
	NoteID    int64     `json:"note_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type couchCounter struct {
	ID    string `json:"_id"`
	Rev   string `json:"_rev,omitempty"`
	Value int64  `json:"value"`
}

type couchNoteRepository struct {
	client *kivik.Client
	dbName string
}

// NewCouchNoteRepository stores notes as CouchDB documents, creating the
// database when it does not exist. IDs come from a counter document updated
// with optimistic concurrency.
func NewCouchNoteRepository(ctx context.Context, client *kivik.Client, dbName string) (NoteRepository, error) {
	exists, err := client.DBExists(ctx, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to check database existence: %w", err)
	}
	if !exists {
		if err := client.CreateDB(ctx, dbName); err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	return &couchNoteRepository{client: client, dbName: dbName}, nil
}

func noteDocID(id int64) string {
	// zero padded so _all_docs key order is id order
	return fmt.Sprintf("%s%020d", noteDocPrefix, id)
}

func (r *couchNoteRepository) Ping(ctx context.Context) error {
	ok, err := r.client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach couchdb: %w", err)
	}
	if !ok {
		return errors.New("couchdb is not responding")
	}
	return nil
}

func (r *couchNoteRepository) nextID(ctx context.Context) (int64, error) {
	db := r.client.DB(r.dbName)

	for attempt := 0; attempt < maxCounterAttempts; attempt++ {
		var counter couchCounter
		if err := db.Get(ctx, noteCounterDocID).ScanDoc(&counter); err != nil && kivik.HTTPStatus(err) != http.StatusNotFound {
			return 0, fmt.Errorf("failed to read note counter: %w", err)
		}

		counter.ID = noteCounterDocID
		counter.Value++
		if _, err := db.Put(ctx, noteCounterDocID, counter); err != nil {
			if kivik.HTTPStatus(err) == http.StatusConflict {
				continue
			}
			return 0, fmt.Errorf("failed to advance note counter: %w", err)
		}
		return counter.Value, nil
	}

	return 0, errCounterContention
}

func (r *couchNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	doc := couchNote{
		ID:        noteDocID(id),
		NoteID:    id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
	if _, err := r.client.DB(r.dbName).Put(ctx, doc.ID, doc); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	note.ID = id
	return nil
}

func (r *couchNoteRepository) List(ctx context.Context) ([]*domain.Note, error) {
	rows := r.client.DB(r.dbName).AllDocs(ctx, kivik.Params(map[string]interface{}{
		"include_docs": true,
		"startkey":     noteDocPrefix,
		"endkey":       noteDocPrefix + "\ufff0",
	}))
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		var doc couchNote
		if err := rows.ScanDoc(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode note: %w", err)
		}
		notes = append(notes, doc.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

func (r *couchNoteRepository) get(ctx context.Context, id int64) (*couchNote, error) {
	var doc couchNote
	if err := r.client.DB(r.dbName).Get(ctx, noteDocID(id)).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &doc, nil
}

func (r *couchNoteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	doc, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *couchNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	doc, err := r.get(ctx, note.ID)
	if err != nil {
		return err
	}

	doc.Title = note.Title
	doc.Content = note.Content
	if _, err := r.client.DB(r.dbName).Put(ctx, doc.ID, doc); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func (r *couchNoteRepository) Delete(ctx context.Context, id int64) error {
	doc, err := r.get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := r.client.DB(r.dbName).Delete(ctx, doc.ID, doc.Rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (d *couchNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        d.NoteID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}
