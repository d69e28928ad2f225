package handlers

import (
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

const (
	defaultGamePage = 25
	maxGamePage     = 200
)

// ListGames lists played games, optionally by ?userId and ?status.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	offset, limit := store.PageBounds(page, size, defaultGamePage, maxGamePage)
	result, err := h.deps.Games.List(r.Context(), playergames.Filter{
		UserID: query(r, "userId"),
		Status: playergames.Status(query(r, "status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// GetGame returns one played game.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Games.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g, h.logger)
}

// UpdateGame applies score or status corrections.
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	var upd playergames.Update
	if err := h.bind.decode(w, r, &upd, false); err != nil {
		h.fail(w, r, err)
		return
	}
	g, err := h.deps.Games.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g, h.logger)
}

// DeleteGame removes a played game once the typed confirmation matches.
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body confirmBody
	if err := h.bind.decode(w, r, &body, false); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := dashboard.Confirm(dashboard.ConfirmDeleteGame, id, body.Confirmation); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.deps.Games.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "game deleted", logging.FieldGameID, id)
	w.WriteHeader(http.StatusNoContent)
}
