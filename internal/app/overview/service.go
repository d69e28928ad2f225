// Package overview assembles the dashboard landing metrics.
package overview

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// Store is the slice of storage the overview reads.
type Store interface {
	CountQuestions(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountDisputes(ctx context.Context, status disputes.Status) (int, error)
	CountPlayerGames(ctx context.Context) (int, error)
	FilledDates(ctx context.Context, start, end string) ([]string, error)
}

// Summary is the overview tab payload.
type Summary struct {
	TotalQuestions  int            `json:"totalQuestions"`
	TotalUsers      int            `json:"totalUsers"`
	PendingDisputes int            `json:"pendingDisputes"`
	GamesPlayed     int            `json:"gamesPlayed"`
	Today           string         `json:"today"`
	MonthCoverage   calendar.Stats `json:"monthCoverage"`
}

// Service computes the overview.
type Service struct {
	store Store
	today func() string
}

// NewService constructs a Service.
func NewService(store Store, today func() string) *Service {
	return &Service{store: store, today: today}
}

// Summary runs the four counts concurrently, then adds coverage for the
// current month. Any failed count fails the whole summary.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalQuestions, err = s.store.CountQuestions(gctx)
		return wrap("questions", err)
	})
	g.Go(func() (err error) {
		out.TotalUsers, err = s.store.CountUsers(gctx)
		return wrap("users", err)
	})
	g.Go(func() (err error) {
		out.PendingDisputes, err = s.store.CountDisputes(gctx, disputes.StatusPending)
		return wrap("pending disputes", err)
	})
	g.Go(func() (err error) {
		out.GamesPlayed, err = s.store.CountPlayerGames(gctx)
		return wrap("games played", err)
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	today := s.today()
	out.Today = today
	t, err := timeutil.ParseDate(today)
	if err != nil {
		return Summary{}, fmt.Errorf("overview: today %q: %w", today, err)
	}
	days := timeutil.DaysInMonth(t.Year(), t.Month())
	filled, err := s.store.FilledDates(ctx, days[0], days[len(days)-1])
	if err != nil {
		return Summary{}, wrap("filled dates", err)
	}
	out.MonthCoverage = calendar.BuildMonth(t.Year(), t.Month(), today, calendar.NewDateSet(filled...)).Stats
	return out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("overview: count %s: %w", what, err)
}

// Clock returns today's date in loc from now.
func Clock(now func() time.Time, loc *time.Location) func() string {
	return func() string { return timeutil.Today(now, loc) }
}
