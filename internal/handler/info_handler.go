package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"webapp-template/internal/service"
	"webapp-template/pkg/response"
)

type InfoHandler struct {
	service *service.InfoService
}

func NewInfoHandler(service *service.InfoService) *InfoHandler {
	return &InfoHandler{service: service}
}

// Get answers every method.
func (h *InfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("database check failed")
		response.InternalError(w)
		return
	}

	response.Success(w, info)
}
