package handler

import (
	"net/http"

	"webapp-template/internal/service"
	"webapp-template/pkg/response"
)

type HealthHandler struct {
	service *service.HealthService
}

func NewHealthHandler(service *service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	report := h.service.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusInternalServerError
	}
	response.JSON(w, status, report)
}
