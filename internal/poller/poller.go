// Package poller runs a housekeeping task on a fixed interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

const defaultInterval = 5 * time.Minute

// Task does one round of work and reports how many items it handled.
type Task func(ctx context.Context) (int, error)

// Poller runs a Task on an interval until stopped.
type Poller struct {
	name     string
	task     Task
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	LastCount           int       `json:"lastCount"`
}

// Healthy reports whether the task is not failing repeatedly.
func (s Status) Healthy() bool {
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A non-positive interval falls back to five minutes.
func New(name string, task Task, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		name:     name,
		task:     task,
		logger:   logging.With(logger, "task", name),
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins running the task until ctx is cancelled or Stop is called.
// The first round runs one interval after Start.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		defer close(p.stopped)
		defer p.ticker.Stop()
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		for {
			select {
			case <-ctx.Done():
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.RunOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight round until ctx expires.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.done) })

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce runs the task immediately and records the outcome.
func (p *Poller) RunOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	n, err := p.task(ctx)
	if err != nil {
		logging.Error(p.logger, "poller task failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err)
		return
	}
	p.recordSuccess(start, n)
	if n > 0 {
		logging.Info(p.logger, "poller task finished", logging.FieldCount, n)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, n int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = n
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
