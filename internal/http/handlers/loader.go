package handlers

import (
	"context"
	"errors"

	"github.com/preston-bernstein/trivia-admin-service/internal/app/overview"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	domaingames "github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	domainusers "github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

const (
	tabPageSize    = 25
	tabCronHistory = 20
)

var errNotConfigured = errors.New("not configured")

// serviceLoader backs dashboard tabs with the REST services.
type serviceLoader struct {
	deps Deps
}

// NewLoader builds the dashboard loader from the handler collaborators.
func NewLoader(deps Deps) dashboard.Loader {
	return &serviceLoader{deps: deps}
}

func (l *serviceLoader) Overview(ctx context.Context) (overview.Summary, error) {
	if l.deps.Overview == nil {
		return overview.Summary{}, errNotConfigured
	}
	return l.deps.Overview.Summary(ctx)
}

func (l *serviceLoader) Content(ctx context.Context) (dashboard.ContentData, error) {
	if l.deps.Content == nil {
		return dashboard.ContentData{}, errNotConfigured
	}
	page, err := l.deps.Content.Questions(ctx, store.QuestionFilter{Limit: tabPageSize})
	if err != nil {
		return dashboard.ContentData{}, err
	}
	cats, err := l.deps.Content.Categories(ctx)
	if err != nil {
		return dashboard.ContentData{}, err
	}
	return dashboard.ContentData{Questions: page, Categories: cats}, nil
}

func (l *serviceLoader) Month(ctx context.Context, month string) (calendar.MonthView, error) {
	if l.deps.Content == nil {
		return calendar.MonthView{}, errNotConfigured
	}
	year, m, err := timeutil.ParseYearMonth(month)
	if err != nil {
		return calendar.MonthView{}, domain.Invalid("month must be YYYY-MM")
	}
	return l.deps.Content.Month(ctx, year, m)
}

func (l *serviceLoader) IngestRuns(context.Context) ([]dashboard.RunSummary, error) {
	if l.deps.Ingest == nil {
		return nil, errNotConfigured
	}
	views := l.deps.Ingest.List()
	out := make([]dashboard.RunSummary, 0, len(views))
	for _, v := range views {
		out = append(out, dashboard.RunSummary{
			ID:         v.ID,
			State:      string(v.State),
			Candidates: len(v.Candidates),
			Selected:   v.Selected,
			Message:    v.Message,
		})
	}
	return out, nil
}

func (l *serviceLoader) Users(ctx context.Context) (users.Page, error) {
	if l.deps.Users == nil {
		return users.Page{}, errNotConfigured
	}
	return l.deps.Users.List(ctx, domainusers.Filter{Limit: tabPageSize})
}

func (l *serviceLoader) PlayerGames(ctx context.Context) (playergames.Page, error) {
	if l.deps.Games == nil {
		return playergames.Page{}, errNotConfigured
	}
	return l.deps.Games.List(ctx, domaingames.Filter{Limit: tabPageSize})
}

func (l *serviceLoader) Disputes(ctx context.Context, f disputes.Filter) (disputes.Page, error) {
	if l.deps.Disputes == nil {
		return disputes.Page{}, errNotConfigured
	}
	return l.deps.Disputes.List(ctx, f)
}

func (l *serviceLoader) Cron(ctx context.Context) (dashboard.CronData, error) {
	var data dashboard.CronData
	if l.deps.Jobs != nil {
		for _, job := range l.deps.Jobs.Jobs() {
			data.Jobs = append(data.Jobs, dashboard.CronJob{Name: job.Name, Schedule: job.Schedule})
		}
	}
	if l.deps.CronLogs != nil {
		runs, err := l.deps.CronLogs.ListCronRuns(ctx, "", tabCronHistory)
		if err != nil {
			return dashboard.CronData{}, err
		}
		data.Runs = runs
	}
	return data, nil
}

func (l *serviceLoader) GuestConfig(ctx context.Context) (guests.Config, error) {
	if l.deps.Guests == nil {
		return guests.Config{}, errNotConfigured
	}
	return l.deps.Guests.Config(ctx)
}
