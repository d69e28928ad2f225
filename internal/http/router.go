package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/http/handlers"
)

// NewRouter registers the public, cron and admin routes. Admin routes need
// adminToken as a bearer token and cron triggers need cronSecret.
func NewRouter(h *handlers.Handler, adminToken, cronSecret string, logger *slog.Logger) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.Handle("POST /cron/{job}", handlers.RequireBearer(cronSecret, logger, nethttp.HandlerFunc(h.CronTrigger)))

	admin := nethttp.NewServeMux()
	registerAdmin(admin, h)
	mux.Handle("/admin/", handlers.RequireBearer(adminToken, logger, admin))
	return mux
}

func registerAdmin(mux *nethttp.ServeMux, h *handlers.Handler) {
	mux.HandleFunc("GET /admin/overview", h.Overview)

	mux.HandleFunc("GET /admin/questions", h.ListQuestions)
	mux.HandleFunc("DELETE /admin/questions", h.DeleteQuestionRange)
	mux.HandleFunc("GET /admin/questions/grouped", h.GroupedQuestions)
	mux.HandleFunc("GET /admin/questions/dates", h.DateSummaries)
	mux.HandleFunc("GET /admin/questions/export", h.ExportQuestions)
	mux.HandleFunc("GET /admin/questions/{id}", h.GetQuestion)
	mux.HandleFunc("PUT /admin/questions/{id}", h.UpdateQuestion)
	mux.HandleFunc("DELETE /admin/questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("GET /admin/categories", h.Categories)

	mux.HandleFunc("GET /admin/calendar", h.Calendar)
	mux.HandleFunc("POST /admin/calendar/{date}/select", h.SelectDate)

	mux.HandleFunc("GET /admin/archive/games", h.ArchiveGame)
	mux.HandleFunc("POST /admin/archive/games/push", h.PushArchiveGame)

	mux.HandleFunc("POST /admin/ingest/runs", h.CreateRun)
	mux.HandleFunc("GET /admin/ingest/runs", h.ListRuns)
	mux.HandleFunc("GET /admin/ingest/runs/{id}", h.GetRun)
	mux.HandleFunc("DELETE /admin/ingest/runs/{id}", h.DiscardRun)
	mux.HandleFunc("POST /admin/ingest/runs/{id}/fetch", h.StartFetch)
	mux.HandleFunc("POST /admin/ingest/runs/{id}/select", h.SelectCandidates)
	mux.HandleFunc("POST /admin/ingest/runs/{id}/push", h.StartPush)
	mux.HandleFunc("POST /admin/ingest/runs/{id}/existing", h.LoadExisting)
	mux.HandleFunc("POST /admin/ingest/runs/{id}/existing/select", h.SelectExisting)
	mux.HandleFunc("POST /admin/ingest/runs/{id}/existing/delete", h.DeleteExisting)
	mux.HandleFunc("GET /admin/ingest/runs/{id}/stream", h.StreamRun)

	mux.HandleFunc("GET /admin/users", h.ListUsers)
	mux.HandleFunc("POST /admin/users/email", h.EmailUsers)
	mux.HandleFunc("GET /admin/users/{id}", h.GetUser)
	mux.HandleFunc("PUT /admin/users/{id}", h.UpdateUser)
	mux.HandleFunc("DELETE /admin/users/{id}", h.DeleteUser)
	mux.HandleFunc("POST /admin/users/{id}/email", h.EmailUser)

	mux.HandleFunc("GET /admin/games", h.ListGames)
	mux.HandleFunc("GET /admin/games/{id}", h.GetGame)
	mux.HandleFunc("PUT /admin/games/{id}", h.UpdateGame)
	mux.HandleFunc("DELETE /admin/games/{id}", h.DeleteGame)

	mux.HandleFunc("GET /admin/disputes", h.ListDisputes)
	mux.HandleFunc("GET /admin/disputes/{id}", h.GetDispute)
	mux.HandleFunc("POST /admin/disputes/{id}/resolve", h.ResolveDispute)

	mux.HandleFunc("GET /admin/cron/jobs", h.ListJobs)
	mux.HandleFunc("GET /admin/cron/logs", h.CronLogs)
	mux.HandleFunc("POST /admin/cron/jobs/{job}/run", h.RunJob)

	mux.HandleFunc("GET /admin/guest-config", h.GuestConfig)
	mux.HandleFunc("PUT /admin/guest-config", h.UpdateGuestConfig)

	mux.HandleFunc("POST /admin/dashboard/sessions", h.CreateSession)
	mux.HandleFunc("GET /admin/dashboard/sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /admin/dashboard/sessions/{id}", h.CloseSession)
	mux.HandleFunc("POST /admin/dashboard/sessions/{id}/events", h.SessionEvent)
}
