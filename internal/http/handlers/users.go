package handlers

import (
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/email"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

const (
	defaultUserPage = 25
	maxUserPage     = 200
)

type emailRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Text    string `json:"text" validate:"required_without=HTML"`
	HTML    string `json:"html"`
}

type broadcastRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,max=500,dive,required"`
	emailRequest
}

// ListUsers lists registered users; guests only with ?includeGuests=true.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	offset, limit := store.PageBounds(page, size, defaultUserPage, maxUserPage)
	result, err := h.deps.Users.List(r.Context(), users.Filter{
		Search:       query(r, "search"),
		IncludeGuest: queryBool(r, "includeGuests"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// GetUser returns one user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.deps.Users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u, h.logger)
}

// UpdateUser edits a user's display name or role.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var upd users.Update
	if err := h.bind.decode(w, r, &upd, false); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.deps.Users.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u, h.logger)
}

// DeleteUser removes a user and their games once the typed confirmation
// matches.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body confirmBody
	if err := h.bind.decode(w, r, &body, false); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := dashboard.Confirm(dashboard.ConfirmDeleteUser, id, body.Confirmation); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.deps.Users.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// EmailUser sends one message to one user.
func (h *Handler) EmailUser(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.deps.Users.SendEmail(r.Context(), r.PathValue("id"), req.Subject, req.Text, req.HTML)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if !result.Sent {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, result, h.logger)
}

// EmailUsers sends the same message to several users; each recipient
// succeeds or fails independently.
func (h *Handler) EmailUsers(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	results, err := h.deps.Users.BroadcastEmail(r.Context(), req.UserIDs, req.Subject, req.Text, req.HTML)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sent := email.CountSent(results)
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"sent":    sent,
		"failed":  len(results) - sent,
	}, h.logger)
}
