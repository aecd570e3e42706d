package handlers

import (
	"log/slog"
	"net/http"

	"yatube/internal/service"
)

type HealthResponse struct {
	Status string `json:"status"`
	*service.Health
}

// Health reports database reachability and row counts.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.TablesService.GetHealth(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "проверка здоровья не пройдена", slog.Any("error", err))
		WriteError(w, "база данных недоступна", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Health: health}, http.StatusOK)
}
