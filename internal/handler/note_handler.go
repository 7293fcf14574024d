package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"webapp-template/internal/domain"
	"webapp-template/internal/service"
	"webapp-template/pkg/response"
)

// 2.5 MiB
const maxNoteBodyBytes = 2621440

var errNotAnObject = errors.New("request body is not a JSON object")

type NoteHandler struct {
	service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// ServeHTTP dispatches on method. Anything other than GET and POST is a 405.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		response.MethodNotAllowed(w)
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list notes")
		response.InternalError(w)
		return
	}

	response.Success(w, domain.NewNoteListResponse(notes))
}

// Create inserts one note. Malformed bodies are server faults, not client
// errors.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	req, err := decodeCreateNote(http.MaxBytesReader(w, r.Body, maxNoteBodyBytes))
	if err != nil {
		log.Error().Err(err).Msg("failed to decode note payload")
		response.InternalError(w)
		return
	}

	note, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create note")
		response.InternalError(w)
		return
	}

	response.Created(w, note.ToCreatedResponse())
}

func decodeCreateNote(body io.Reader) (domain.CreateNoteRequest, error) {
	var req domain.CreateNoteRequest

	raw, err := io.ReadAll(body)
	if err != nil {
		return req, fmt.Errorf("read body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return req, fmt.Errorf("decode body: %w", err)
	}
	if fields == nil {
		return req, errNotAnObject
	}

	if req.Title, err = coerceField(fields, "title"); err != nil {
		return req, err
	}
	if req.Content, err = coerceField(fields, "content"); err != nil {
		return req, err
	}
	return req, nil
}

// coerceField reads a text field. A missing field is "", strings are used
// as is, numbers keep their JSON text and booleans become "True" or "False".
// Null, objects and arrays are rejected.
func coerceField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", fmt.Errorf("field %q is empty", name)
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("field %q: %w", name, err)
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", fmt.Errorf("field %q: %w", name, err)
		}
		if b {
			return "True", nil
		}
		return "False", nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw), nil
	default:
		return "", fmt.Errorf("field %q must be text, got %s", name, raw)
	}
}
