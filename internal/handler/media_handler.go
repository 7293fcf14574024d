package handler

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"webapp-template/internal/storage"
	"webapp-template/pkg/response"
)

type MediaHandler struct {
	storage storage.Storage
	prefix  string
}

// NewMediaHandler serves keys found below prefix in the request path.
func NewMediaHandler(store storage.Storage, prefix string) *MediaHandler {
	return &MediaHandler{storage: store, prefix: prefix}
}

func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key, err := storage.CleanKey(strings.TrimPrefix(r.URL.Path, h.prefix))
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}

	switch store := h.storage.(type) {
	case storage.Presigner:
		url, err := store.PresignGet(r.Context(), key)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	case storage.Opener:
		body, info, err := store.Open(r.Context(), key)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		defer body.Close()

		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		http.ServeContent(w, r, path.Base(key), info.ModTime, body)
	default:
		response.NotFound(w, "File not found")
	}
}

func (h *MediaHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
		response.NotFound(w, "File not found")
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to serve media")
	response.InternalError(w)
}
