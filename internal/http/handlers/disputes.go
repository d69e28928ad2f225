package handlers

import (
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
)

// ListDisputes lists disputes by ?status with page and pageSize.
func (h *Handler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.deps.Disputes.List(r.Context(), disputes.Filter{
		Status:   disputes.Status(query(r, "status")),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// GetDispute returns one dispute.
func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	d, err := h.deps.Disputes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d, h.logger)
}

// ResolveDispute approves or rejects a pending dispute.
func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	var res disputes.Resolution
	if err := h.bind.decode(w, r, &res, false); err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := h.deps.Disputes.Resolve(r.Context(), r.PathValue("id"), res)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d, h.logger)
}
