package handlers

import (
	"net/http"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
)

const (
	defaultCronLogLimit = 50
	maxCronLogLimit     = 500
)

type jobView struct {
	Name     string          `json:"name"`
	Schedule string          `json:"schedule,omitempty"`
	NextRun  *time.Time      `json:"nextRun,omitempty"`
	LastRun  *cronlogs.Entry `json:"lastRun,omitempty"`
}

// ListJobs lists registered jobs with their next and last run.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	var next map[string]time.Time
	if h.deps.NextRuns != nil {
		next = h.deps.NextRuns()
	}
	jobs := h.deps.Jobs.Jobs()
	out := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		view := jobView{Name: job.Name, Schedule: job.Schedule}
		if t, ok := next[job.Name]; ok && !t.IsZero() {
			view.NextRun = &t
		}
		runs, err := h.deps.CronLogs.ListCronRuns(r.Context(), job.Name, 1)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if len(runs) > 0 {
			view.LastRun = &runs[0]
		}
		out = append(out, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": out}, h.logger)
}

// CronLogs lists recorded runs, newest first, optionally for one ?job.
func (h *Handler) CronLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultCronLogLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if limit == 0 || limit > maxCronLogLimit {
		limit = maxCronLogLimit
	}
	runs, err := h.deps.CronLogs.ListCronRuns(r.Context(), query(r, "job"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs}, h.logger)
}

// RunJob triggers a job from the admin dashboard.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, cronlogs.TriggerManual)
}

// CronTrigger lets an external scheduler fire a job.
func (h *Handler) CronTrigger(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, cronlogs.TriggerScheduled)
}

// trigger runs the job synchronously. A failed job is still a recorded run,
// so it is returned with 200 and status FAILED.
func (h *Handler) trigger(w http.ResponseWriter, r *http.Request, trigger cronlogs.Trigger) {
	entry, err := h.deps.Jobs.Trigger(r.Context(), r.PathValue("job"), trigger)
	if err != nil && entry.ID == "" {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry, h.logger)
}
