package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

// Scheduler fires every registered job on its cron schedule.
type Scheduler struct {
	runner *Runner
	cron   *cron.Cron
	logger *slog.Logger
	// timeout bounds a single scheduled run.
	timeout time.Duration
	entries map[string]cron.EntryID

	ctx    context.Context
	cancel context.CancelFunc

	startMu  sync.Mutex
	started  bool
	stopOnce sync.Once
}

// NewScheduler registers every job the runner knows with its schedule.
// Jobs with an empty schedule are manual only.
func NewScheduler(runner *Runner, loc *time.Location, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		runner:  runner,
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		timeout: timeout,
		entries: make(map[string]cron.EntryID),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, job := range runner.Jobs() {
		if job.Schedule == "" {
			continue
		}
		name := job.Name
		id, err := s.cron.AddFunc(job.Schedule, func() { s.fire(name) })
		if err != nil {
			cancel()
			return nil, fmt.Errorf("schedule %s (%q): %w", name, job.Schedule, err)
		}
		s.entries[name] = id
	}
	return s, nil
}

// Start begins firing jobs. Calling it twice has no effect.
func (s *Scheduler) Start() {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	logging.Info(s.logger, "scheduler started", logging.FieldCount, len(s.cron.Entries()))
}

// Stop halts scheduling and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		done := s.cron.Stop()
		select {
		case <-done.Done():
		case <-ctx.Done():
			s.cancel()
			err = ctx.Err()
		}
		s.cancel()
		logging.Info(s.logger, "scheduler stopped")
	})
	return err
}

// Next reports when each scheduled job fires next. Times are zero until
// the scheduler has started.
func (s *Scheduler) Next() map[string]time.Time {
	out := make(map[string]time.Time, len(s.entries))
	for name, id := range s.entries {
		out[name] = s.cron.Entry(id).Next
	}
	return out
}

func (s *Scheduler) fire(name string) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	// Failures are already recorded and logged by the runner.
	_, _ = s.runner.Trigger(ctx, name, cronlogs.TriggerScheduled)
}
