package handlers

import (
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

// CreateSession opens a dashboard session on the overview tab.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.deps.Sessions.Create()
	logging.Debug(loggerFromContext(r, h.logger), "dashboard session created", logging.FieldSessionID, s.ID())
	view, err := s.Dispatch(r.Context(), h.deps.Loader, dashboard.Event{Type: dashboard.EventSelectTab, Tab: dashboard.TabOverview})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view, h.logger)
}

// GetSession returns the current session view.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Sessions.Get(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View(), h.logger)
}

// CloseSession forgets a session.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Sessions.Close(r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionEvent applies one event and returns the updated view. Load
// failures come back as the view's message, not as an error status.
func (h *Handler) SessionEvent(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Sessions.Get(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var e dashboard.Event
	if err := h.bind.decode(w, r, &e, false); err != nil {
		h.fail(w, r, err)
		return
	}
	view, err := s.Dispatch(r.Context(), h.deps.Loader, e)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, h.logger)
}
