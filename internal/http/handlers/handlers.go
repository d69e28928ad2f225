package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/trivia-admin-service/internal/app/content"
	appdisputes "github.com/preston-bernstein/trivia-admin-service/internal/app/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/overview"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/ingest"
	"github.com/preston-bernstein/trivia-admin-service/internal/jobs"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
)

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CronLogs lists recorded job runs.
type CronLogs interface {
	ListCronRuns(ctx context.Context, job string, limit int) ([]cronlogs.Entry, error)
}

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Store    Pinger
	Archive  providers.ArchiveProvider
	Content  *content.Service
	Users    *users.Service
	Games    *playergames.Service
	Disputes *appdisputes.Service
	Guests   *guests.Service
	Overview *overview.Service
	Ingest   *ingest.Manager
	Sessions *dashboard.Manager
	Loader   dashboard.Loader
	Jobs     *jobs.Runner
	CronLogs CronLogs
	NextRuns func() map[string]time.Time
	Validate *validator.Validate
	Logger   *slog.Logger
}

// Handler serves the admin API.
type Handler struct {
	deps   Deps
	bind   *binder
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(deps Deps) *Handler {
	if deps.Loader == nil {
		deps.Loader = NewLoader(deps)
	}
	return &Handler{
		deps:   deps,
		bind:   newBinder(deps.Validate),
		logger: deps.Logger,
		now:    time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic; storage must answer a ping.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.deps.Store == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.deps.Store.Ping(ctx); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "readiness ping failed", logging.FieldError, err)
		writeError(w, r, nethttp.StatusServiceUnavailable, "storage unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Overview returns the dashboard headline numbers.
func (h *Handler) Overview(w nethttp.ResponseWriter, r *nethttp.Request) {
	summary, err := h.deps.Overview.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, summary, h.logger)
}
