package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"webapp-template/internal/domain"
	"webapp-template/internal/middleware"
	"webapp-template/internal/service"
	"webapp-template/pkg/response"
)

const adminCookiePath = "/admin/"

type AdminHandler struct {
	admin         *service.AdminService
	notes         *service.NoteService
	secureCookies bool
	validate      *validator.Validate
}

// NewAdminHandler builds the admin surface. secureCookies marks the session
// cookie Secure regardless of the request scheme.
func NewAdminHandler(admin *service.AdminService, notes *service.NoteService, secureCookies bool) *AdminHandler {
	return &AdminHandler{
		admin:         admin,
		notes:         notes,
		secureCookies: secureCookies,
		validate:      validator.New(),
	}
}

func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"site":   domain.AppName + " administration",
		"user":   middleware.GetAdminUser(r),
		"models": []string{"notes"},
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	session, err := h.admin.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminDisabled):
			response.Forbidden(w, "Admin is not configured")
		case errors.Is(err, service.ErrInvalidCredentials):
			zerolog.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("admin login failed")
			response.Unauthorized(w, "Invalid username or password")
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("admin login error")
			response.InternalError(w)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    session.Token,
		Path:     adminCookiePath,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies || middleware.IsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(w, session)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     adminCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies || middleware.IsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})

	response.Message(w, "Logged out")
}

func (h *AdminHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list notes")
		response.InternalError(w)
		return
	}

	response.Success(w, domain.NewNoteListResponse(notes))
}

func (h *AdminHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		response.NotFound(w, "Note not found")
		return
	}

	note, err := h.notes.GetByID(r.Context(), id)
	if err != nil {
		h.noteError(w, r, err)
		return
	}

	response.Success(w, note.ToResponse())
}

func (h *AdminHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		response.NotFound(w, "Note not found")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	note, err := h.notes.Update(r.Context(), id, &req)
	if err != nil {
		h.noteError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("note_id", id).Msg("note updated")
	response.Success(w, note.ToResponse())
}

func (h *AdminHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(r)
	if !ok {
		response.NotFound(w, "Note not found")
		return
	}

	if err := h.notes.Delete(r.Context(), id); err != nil {
		h.noteError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("note_id", id).Msg("note deleted")
	response.Message(w, "Note deleted successfully")
}

func (h *AdminHandler) noteError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNoteNotFound) {
		response.NotFound(w, "Note not found")
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("admin note operation failed")
	response.InternalError(w)
}

func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
