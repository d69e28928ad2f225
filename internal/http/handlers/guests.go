package handlers

import (
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
)

// GuestConfig returns the guest-play settings.
func (h *Handler) GuestConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.deps.Guests.Config(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg, h.logger)
}

// UpdateGuestConfig replaces the guest-play settings.
func (h *Handler) UpdateGuestConfig(w http.ResponseWriter, r *http.Request) {
	var cfg guests.Config
	if err := h.bind.decode(w, r, &cfg, false); err != nil {
		h.fail(w, r, err)
		return
	}
	saved, err := h.deps.Guests.Update(r.Context(), cfg)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved, h.logger)
}
