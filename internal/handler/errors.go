package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"yatube/internal/logger"
	"yatube/internal/middleware"
	"yatube/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "core/404", nil)
}

func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, "core/500", viewData{"RequestID": logger.RequestID(r.Context())})
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// handleServiceError maps service errors to a response. Validation errors are handled by the caller.
func (h *Handlers) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.NotFound(w, r)
	case errors.Is(err, service.ErrAuthenticationRequired):
		http.Redirect(w, r, middleware.LoginRedirectURL(r.URL.RequestURI()), http.StatusFound)
	default:
		slog.ErrorContext(r.Context(), "ошибка обработки запроса", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.ServerError(w, r)
	}
}
