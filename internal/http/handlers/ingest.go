package handlers

import (
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/ingest"
)

type fetchRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type selectRequest struct {
	GameID string `json:"gameId,omitempty"`
	All    bool   `json:"all,omitempty"`
	None   bool   `json:"none,omitempty"`
}

type selectDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// CreateRun starts a new idle batch run.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	run := h.deps.Ingest.Create()
	writeJSON(w, http.StatusCreated, run.Snapshot(), h.logger)
}

// ListRuns lists batch runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": h.deps.Ingest.List()}, h.logger)
}

// GetRun returns one run.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run.Snapshot(), h.logger)
}

// DiscardRun drops a run that is not fetching or pushing.
func (h *Handler) DiscardRun(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Ingest.Discard(r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartFetch validates the range and fetches it in the background. Progress
// is available from the run and its stream.
func (h *Handler) StartFetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	id := r.PathValue("id")
	if err := h.deps.Ingest.StartFetch(id, req.Start, req.End); err != nil {
		h.fail(w, r, err)
		return
	}
	h.acceptedRun(w, r, id)
}

// SelectCandidates toggles one fetched game or selects all or none.
func (h *Handler) SelectCandidates(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	var req selectRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	var err error
	switch {
	case req.All && !req.None && req.GameID == "":
		err = run.SelectAll()
	case req.None && !req.All && req.GameID == "":
		err = run.SelectNone()
	case req.GameID != "" && !req.All && !req.None:
		err = run.Toggle(req.GameID)
	default:
		err = domain.Invalid("provide exactly one of gameId, all or none")
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run.Snapshot(), h.logger)
}

// StartPush stores the selected games in the background.
func (h *Handler) StartPush(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.deps.Ingest.StartPush(id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.acceptedRun(w, r, id)
}

// LoadExisting lists what storage already holds for a range.
func (h *Handler) LoadExisting(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	var req fetchRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := run.LoadExisting(r.Context(), req.Start, req.End); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run.Snapshot(), h.logger)
}

// SelectExisting toggles one stored date for deletion.
func (h *Handler) SelectExisting(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	var req selectDateRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := run.ToggleExisting(req.Date); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run.Snapshot(), h.logger)
}

// DeleteExisting removes the selected stored dates once the typed
// confirmation matches.
func (h *Handler) DeleteExisting(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	var body confirmBody
	if err := h.bind.decode(w, r, &body, false); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := run.DeleteExisting(r.Context(), body.Confirmation)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result, "run": run.Snapshot()}, h.logger)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*ingest.Run, bool) {
	run, ok := h.deps.Ingest.Get(r.PathValue("id"))
	if !ok {
		h.fail(w, r, ingest.ErrRunNotFound)
		return nil, false
	}
	return run, true
}

func (h *Handler) acceptedRun(w http.ResponseWriter, r *http.Request, id string) {
	run, ok := h.deps.Ingest.Get(id)
	if !ok {
		h.fail(w, r, ingest.ErrRunNotFound)
		return
	}
	writeJSON(w, http.StatusAccepted, run.Snapshot(), h.logger)
}
