package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/http/middleware"
	"github.com/preston-bernstein/trivia-admin-service/internal/ingest"
	"github.com/preston-bernstein/trivia-admin-service/internal/jobs"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, message), logger)
}

func errorBody(r *http.Request, message string) map[string]string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	return body
}

// fail maps a service error to a status code. Validation failures carry
// their user-visible message and are not logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		logging.Error(loggerFromContext(r, h.logger), "request failed", err, slog.Int(logging.FieldStatusCode, status))
	}
	writeError(w, r, status, message, h.logger)
}

func classify(err error) (int, string) {
	if v, ok := domain.AsValidation(err); ok {
		return http.StatusBadRequest, v.Message
	}
	switch {
	case errors.Is(err, dashboard.ErrConfirmationMismatch),
		errors.Is(err, ingest.ErrUnknownCandidate):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, ingest.ErrRunNotFound),
		errors.Is(err, dashboard.ErrSessionNotFound),
		errors.Is(err, jobs.ErrUnknownJob):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict), errors.Is(err, ingest.ErrBusy):
		return http.StatusConflict, err.Error()
	}
	if nf, ok := providers.AsNotFoundError(err); ok {
		return http.StatusNotFound, nf.Error()
	}
	if _, ok := providers.AsRateLimitError(err); ok {
		return http.StatusBadGateway, "trivia archive is rate limiting requests"
	}
	if errors.Is(err, providers.ErrProviderUnavailable) {
		return http.StatusBadGateway, "trivia archive unavailable"
	}
	return http.StatusInternalServerError, "internal error"
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
