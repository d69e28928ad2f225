package ingest

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

// Manager owns the ingest runs of the service. Background loops run on the
// manager's context so they outlive the request that started them.
type Manager struct {
	deps Deps
	ctx  context.Context

	mu   sync.RWMutex
	runs map[string]*Run
	wg   sync.WaitGroup
}

// NewManager constructs a Manager whose loops stop when ctx is done.
func NewManager(ctx context.Context, deps Deps) *Manager {
	return &Manager{deps: deps, ctx: ctx, runs: make(map[string]*Run)}
}

// Create starts a new idle run.
func (m *Manager) Create() *Run {
	run := NewRun(uuid.NewString(), m.deps)
	m.mu.Lock()
	m.runs[run.ID()] = run
	m.mu.Unlock()
	logging.Info(m.deps.Logger, "ingest run created", slog.String(logging.FieldRunID, run.ID()))
	return run
}

// Get looks up a run.
func (m *Manager) Get(id string) (*Run, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	return run, ok
}

// Len reports how many runs are held.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// List snapshots every run, newest first.
func (m *Manager) List() []View {
	m.mu.RLock()
	views := make([]View, 0, len(m.runs))
	for _, run := range m.runs {
		views = append(views, run.Snapshot())
	}
	m.mu.RUnlock()
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	return views
}

// Discard drops a run that is not busy.
func (m *Manager) Discard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	if run.State() == StateFetching || run.State() == StatePushing {
		return ErrBusy
	}
	delete(m.runs, id)
	run.closeSubscribers()
	return nil
}

// StartFetch validates synchronously, then fetches in the background.
func (m *Manager) StartFetch(id, start, end string) error {
	run, ok := m.Get(id)
	if !ok {
		return ErrRunNotFound
	}
	dates, err := run.beginFetch(start, end)
	if err != nil {
		return err
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		run.fetchDates(m.ctx, dates)
	}()
	return nil
}

// StartPush validates synchronously, then pushes in the background.
func (m *Manager) StartPush(id string) error {
	run, ok := m.Get(id)
	if !ok {
		return ErrRunNotFound
	}
	games, err := run.beginPush()
	if err != nil {
		return err
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		run.pushGames(m.ctx, games)
	}()
	return nil
}

// Wait blocks until every background loop has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Sweep discards idle runs untouched since before cutoff and returns how
// many were dropped. Runs that are fetching or pushing are kept.
func (m *Manager) Sweep(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, run := range m.runs {
		run.mu.Lock()
		stale := !run.busy() && run.updatedAt.Before(cutoff)
		run.mu.Unlock()
		if stale {
			delete(m.runs, id)
			run.closeSubscribers()
			removed++
		}
	}
	if removed > 0 {
		logging.Info(m.deps.Logger, "idle ingest runs discarded", logging.FieldCount, removed)
	}
	return removed
}
