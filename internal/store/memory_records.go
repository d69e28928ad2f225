package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
)

const (
	defaultDisputePageSize = 20
	maxDisputePageSize     = 100
)

// ListDisputes returns one page of disputes, oldest pending first.
func (s *MemoryStore) ListDisputes(_ context.Context, f disputes.Filter) ([]disputes.Dispute, int, error) {
	s.mu.RLock()
	matched := make([]disputes.Dispute, 0, len(s.disputes))
	for _, d := range s.disputes {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		matched = append(matched, d)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	offset, limit := PageBounds(f.Page, f.PageSize, defaultDisputePageSize, maxDisputePageSize)
	lo, hi := window(len(matched), offset, limit)
	return matched[lo:hi], len(matched), nil
}

// GetDispute looks up a dispute by ID.
func (s *MemoryStore) GetDispute(_ context.Context, id string) (disputes.Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.disputes[id]
	if !ok {
		return disputes.Dispute{}, ErrNotFound
	}
	return d, nil
}

// ResolveDispute records the admin decision.
func (s *MemoryStore) ResolveDispute(_ context.Context, id string, res disputes.Resolution, at time.Time) (disputes.Dispute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.disputes[id]
	if !ok {
		return disputes.Dispute{}, ErrNotFound
	}
	d.Status = res.Status
	d.AdminNote = res.Note
	d.ResolvedAt = &at
	s.disputes[id] = d
	return d, nil
}

// CountDisputes counts disputes in status; empty counts all.
func (s *MemoryStore) CountDisputes(_ context.Context, status disputes.Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status == "" {
		return len(s.disputes), nil
	}
	n := 0
	for _, d := range s.disputes {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

// StartCronRun records a RUNNING entry and returns it with an ID.
func (s *MemoryStore) StartCronRun(_ context.Context, e cronlogs.Entry) (cronlogs.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Status = cronlogs.StatusRunning
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cronRuns = append(s.cronRuns, e)
	return e, nil
}

// FinishCronRun overwrites the entry with e.ID.
func (s *MemoryStore) FinishCronRun(_ context.Context, e cronlogs.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cronRuns {
		if s.cronRuns[i].ID == e.ID {
			s.cronRuns[i] = e
			return nil
		}
	}
	return ErrNotFound
}

// ListCronRuns returns runs newest first, optionally for one job.
func (s *MemoryStore) ListCronRuns(_ context.Context, job string, limit int) ([]cronlogs.Entry, error) {
	s.mu.RLock()
	out := make([]cronlogs.Entry, 0, len(s.cronRuns))
	for i := len(s.cronRuns) - 1; i >= 0; i-- {
		e := s.cronRuns[i]
		if job != "" && e.JobName != job {
			continue
		}
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PruneCronRuns drops finished runs started before the cutoff.
func (s *MemoryStore) PruneCronRuns(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cronRuns[:0]
	removed := 0
	for _, e := range s.cronRuns {
		if e.Status != cronlogs.StatusRunning && e.StartedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.cronRuns = kept
	return removed, nil
}

// GetGuestConfig returns the saved config or the default.
func (s *MemoryStore) GetGuestConfig(context.Context) (guests.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.guestCfg == nil {
		return guests.Default(), nil
	}
	cfg := *s.guestCfg
	cfg.AllowedModes = append([]string(nil), cfg.AllowedModes...)
	return cfg, nil
}

// SaveGuestConfig replaces the guest config.
func (s *MemoryStore) SaveGuestConfig(_ context.Context, cfg guests.Config) (guests.Config, error) {
	cfg.AllowedModes = append([]string(nil), cfg.AllowedModes...)
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guestCfg = &cfg
	return cfg, nil
}
