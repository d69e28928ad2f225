// Package jobs runs scheduled maintenance and reporting jobs and records
// every run in the cron log.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
)

// ErrUnknownJob is returned when triggering a job that is not registered.
var ErrUnknownJob = errors.New("unknown job")

// Job is a named unit of scheduled work. Run returns a JSON-serialisable
// result payload that is stored with the run.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) (any, error)
}

// LogStore records job runs.
type LogStore interface {
	StartCronRun(ctx context.Context, e cronlogs.Entry) (cronlogs.Entry, error)
	FinishCronRun(ctx context.Context, e cronlogs.Entry) error
}

// Runner executes registered jobs and records each run.
type Runner struct {
	store   LogStore
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu   sync.RWMutex
	jobs map[string]Job
}

// NewRunner builds a Runner with no jobs registered.
func NewRunner(store LogStore, logger *slog.Logger, recorder *metrics.Recorder) *Runner {
	return &Runner{
		store:   store,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		jobs:    make(map[string]Job),
	}
}

// Register adds or replaces a job.
func (r *Runner) Register(job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.Name] = job
}

// Jobs lists registered jobs sorted by name.
func (r *Runner) Jobs() []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out
}

// Trigger runs the named job now. The run is logged as RUNNING first and
// then finished as SUCCESS or FAILED. A panicking job is recorded as
// FAILED. The returned error is the job's own failure.
func (r *Runner) Trigger(ctx context.Context, name string, trigger cronlogs.Trigger) (cronlogs.Entry, error) {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()
	if !ok {
		return cronlogs.Entry{}, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}

	logger := logging.With(r.logger, logging.FieldJob, name, logging.FieldTrigger, string(trigger))
	started := r.now()
	entry, err := r.store.StartCronRun(ctx, cronlogs.Entry{
		JobName:     name,
		TriggeredBy: trigger,
		StartedAt:   started,
	})
	if err != nil {
		logging.Error(logger, "cron run could not be recorded", err)
		return cronlogs.Entry{}, fmt.Errorf("record run start: %w", err)
	}

	result, runErr := safeRun(ctx, job)

	completed := r.now()
	entry.CompletedAt = &completed
	entry.DurationMS = completed.Sub(started).Milliseconds()
	entry.Status = cronlogs.StatusSuccess
	if runErr != nil {
		entry.Status = cronlogs.StatusFailed
		entry.Error = runErr.Error()
	}
	if result != nil {
		payload, err := json.Marshal(result)
		if err != nil {
			logging.Warn(logger, "cron result not serialisable", logging.FieldError, err)
		} else {
			entry.Result = payload
		}
	}

	// The run outcome is recorded even if the caller's context is gone.
	if err := r.store.FinishCronRun(context.WithoutCancel(ctx), entry); err != nil {
		logging.Error(logger, "cron run result could not be recorded", err)
	}
	r.metrics.RecordCronRun(name, string(trigger), string(entry.Status), completed.Sub(started))

	if runErr != nil {
		logging.Error(logger, "cron job failed", runErr, logging.FieldDurationMS, entry.DurationMS)
		return entry, runErr
	}
	logging.Info(logger, "cron job finished", logging.FieldDurationMS, entry.DurationMS)
	return entry, nil
}

func safeRun(ctx context.Context, job Job) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("job panicked: %v", p)
		}
	}()
	return job.Run(ctx)
}
