package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/trivia-admin-service/internal/app/content"
	appdisputes "github.com/preston-bernstein/trivia-admin-service/internal/app/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/overview"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/config"
	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/email"
	httpserver "github.com/preston-bernstein/trivia-admin-service/internal/http"
	"github.com/preston-bernstein/trivia-admin-service/internal/http/handlers"
	"github.com/preston-bernstein/trivia-admin-service/internal/http/middleware"
	"github.com/preston-bernstein/trivia-admin-service/internal/ingest"
	"github.com/preston-bernstein/trivia-admin-service/internal/jobs"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
	"github.com/preston-bernstein/trivia-admin-service/internal/poller"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         store.Store
	runs          *ingest.Manager
	sessions      *dashboard.Manager
	httpServer    httpServer
	metricsServer httpServer
	scheduler     Scheduler
	housekeeper   Poller
	metricsStop   func(context.Context) error
	cancelRuns    context.CancelFunc
}

// components are the external collaborators a server is assembled from.
type components struct {
	store    store.Store
	provider providers.ArchiveProvider
	sender   email.Sender
	recorder *metrics.Recorder
	now      func() time.Time
}

// New opens the configured store and wires every service, the ingest
// manager, the cron scheduler and the housekeeping loop.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}

	srv, err := assemble(cfg, logger, components{
		store:    st,
		provider: newProviderFactory(logger, recorder).build(cfg.Archive),
		sender:   buildSender(cfg.Email, logger),
		recorder: recorder,
		now:      time.Now,
	})
	if err != nil {
		st.Close()
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

func assemble(cfg config.Config, logger *slog.Logger, c components) (*Server, error) {
	if c.now == nil {
		c.now = time.Now
	}
	if c.recorder == nil {
		c.recorder = metrics.NewRecorder()
	}
	loc := timeutil.LoadLocation(cfg.Timezone)
	today := overview.Clock(c.now, loc)
	month := func() string { return today()[:7] }
	validate := validator.New()

	contentSvc := content.NewService(c.store, today)
	runCtx, cancelRuns := context.WithCancel(context.Background())
	runs := ingest.NewManager(runCtx, ingest.Deps{
		Provider:     c.provider,
		Content:      contentSvc,
		Logger:       logger,
		Recorder:     c.recorder,
		MaxRangeDays: cfg.Archive.MaxRangeDays,
	})
	sessions := dashboard.NewManager(c.now, month, logger)
	if err := c.recorder.ObserveGauge("dashboard_sessions_active", "Open dashboard sessions.", sessions.Len); err != nil {
		logging.Warn(logger, "session gauge not registered", logging.FieldError, err)
	}
	if err := c.recorder.ObserveGauge("ingest_runs_active", "Ingest runs held in memory.", runs.Len); err != nil {
		logging.Warn(logger, "run gauge not registered", logging.FieldError, err)
	}

	runner := jobs.NewRunner(c.store, logger, c.recorder)
	runner.Register(jobs.DailyReport(c.store, c.sender, jobs.ReportConfig{
		Schedule:   cfg.Cron.DailyReportSchedule,
		Recipients: cfg.Cron.ReportRecipients,
		WindowDays: cfg.Cron.CoverageDays,
		Today:      today,
		Now:        c.now,
	}, logger))
	runner.Register(jobs.PruneCronLogs(c.store, cfg.Cron.PruneSchedule, time.Duration(cfg.Cron.RetentionDays)*24*time.Hour, c.now))

	var (
		scheduler Scheduler
		nextRuns  func() map[string]time.Time
	)
	if cfg.Cron.Enabled {
		sched, err := jobs.NewScheduler(runner, loc, jobTimeout, logger)
		if err != nil {
			cancelRuns()
			return nil, err
		}
		scheduler = sched
		nextRuns = sched.Next
	}

	if cfg.AdminToken == "" {
		logging.Warn(logger, "ADMIN_TOKEN is not set; every admin request will be rejected")
	}

	h := handlers.NewHandler(handlers.Deps{
		Store:    c.store,
		Archive:  c.provider,
		Content:  contentSvc,
		Users:    users.NewService(c.store, c.sender, logger),
		Games:    playergames.NewService(c.store),
		Disputes: appdisputes.NewService(c.store, c.now),
		Guests:   guests.NewService(c.store, validate, c.now),
		Overview: overview.NewService(c.store, today),
		Ingest:   runs,
		Sessions: sessions,
		Jobs:     runner,
		CronLogs: c.store,
		NextRuns: nextRuns,
		Validate: validate,
		Logger:   logger,
	})
	router := httpserver.NewRouter(h, cfg.AdminToken, cfg.CronSecret, logger)
	wrapped := middleware.LoggingMiddleware(logger, c.recorder, middleware.Recover(logger, router))

	return &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  c.recorder,
		store:    c.store,
		runs:     runs,
		sessions: sessions,
		httpServer: netHTTPServer{srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      wrapped,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}},
		scheduler:   scheduler,
		housekeeper: newHousekeeper(cfg.Housekeeping, sessions, runs, c.now, logger),
		cancelRuns:  cancelRuns,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, sched Scheduler, housekeeper Poller) *Server {
	return &Server{
		cfg:         cfg,
		logger:      logger,
		httpServer:  httpSrv,
		scheduler:   sched,
		housekeeper: housekeeper,
	}
}

// newHousekeeper drops dashboard sessions and ingest runs nobody has
// touched within their TTL.
func newHousekeeper(cfg config.HousekeepingConfig, sessions *dashboard.Manager, runs *ingest.Manager, now func() time.Time, logger *slog.Logger) *poller.Poller {
	task := func(context.Context) (int, error) {
		dropped := 0
		if cfg.SessionTTL > 0 {
			dropped += sessions.Sweep(cfg.SessionTTL)
		}
		if cfg.RunTTL > 0 {
			dropped += runs.Sweep(now().Add(-cfg.RunTTL))
		}
		return dropped, nil
	}
	return poller.New("housekeeping", task, logger, cfg.Interval)
}

// Run starts the servers and background loops, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.housekeeper != nil {
		s.housekeeper.Start(ctx)
	}
	if s.scheduler != nil {
		s.scheduler.Start()
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", "addr", s.httpServer.Addr())
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", "addr", s.metricsServer.Addr())
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops accepting requests first, then background work,
// then telemetry and storage.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.scheduler != nil {
		if err := s.scheduler.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop scheduler", err)
		}
	}

	if s.housekeeper != nil {
		if err := s.housekeeper.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop housekeeping", err)
		}
	}

	s.stopRuns(shutdownCtx)

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.store != nil {
		s.store.Close()
	}

	logging.Info(s.logger, "shutdown complete")
}

// stopRuns cancels in-flight fetch and push loops and waits for them to
// record their partial results.
func (s *Server) stopRuns(ctx context.Context) {
	if s.cancelRuns != nil {
		s.cancelRuns()
	}
	if s.runs == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		s.runs.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logging.Warn(s.logger, "ingest runs did not stop before shutdown deadline")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:        cfg.Metrics.Enabled,
		Port:           cfg.Metrics.Port,
		ServiceName:    cfg.Metrics.ServiceName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Env,
		OtlpEndpoint:   cfg.Metrics.OtlpEndpoint,
		OtlpInsecure:   cfg.Metrics.OtlpInsecure,
		ExportInterval: cfg.Metrics.ExportInterval,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error(logger, name+" server failed", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
