package domain

import (
	"encoding/json"
	"time"
)

type Note struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateNoteRequest carries the already-coerced fields of a new note.
type CreateNoteRequest struct {
	Title   string
	Content string
}

// UpdateNoteRequest is used by the admin surface. Nil fields are left as is.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NoteResponse is one element of a notes listing.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// CreatedNoteResponse is returned from a create. It does not echo content.
type CreatedNoteResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

func (n *Note) ToResponse() NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: Timestamp(n.CreatedAt),
	}
}

func (n *Note) ToCreatedResponse() CreatedNoteResponse {
	return CreatedNoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		CreatedAt: ISOFormat(n.CreatedAt),
	}
}

func NewNoteListResponse(notes []*Note) NoteListResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ToResponse())
	}
	return NoteListResponse{Notes: out}
}

// Timestamp marshals as UTC with millisecond precision and a Z suffix, the
// format used for timestamps inside listings.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	tt := time.Time(t).UTC()
	layout := "2006-01-02T15:04:05Z"
	if tt.Nanosecond()/int(time.Microsecond) != 0 {
		layout = "2006-01-02T15:04:05.000Z"
	}
	return json.Marshal(tt.Format(layout))
}

// ISOFormat renders t with microsecond precision and a numeric offset,
// omitting the fraction when it is zero.
func ISOFormat(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}
