package jobs

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/email"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// DailyReportName is the registered name of the daily report job.
const DailyReportName = "daily-report"

const defaultReportWindow = 30

//go:embed templates/*
var templateFS embed.FS

var templateFuncs = map[string]any{
	"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
}

var (
	htmlReport = htmltemplate.Must(htmltemplate.New("daily_report.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/daily_report.html"))
	textReport = texttemplate.Must(texttemplate.New("daily_report.txt").Funcs(templateFuncs).ParseFS(templateFS, "templates/daily_report.txt"))
)

// ReportStore is the storage the daily report reads.
type ReportStore interface {
	FilledDates(ctx context.Context, start, end string) ([]string, error)
	CountDisputes(ctx context.Context, status disputes.Status) (int, error)
	CountUsersSince(ctx context.Context, since time.Time) (int, error)
	CountPlayerGamesSince(ctx context.Context, since time.Time) (int, error)
}

// ReportConfig configures the daily report job.
type ReportConfig struct {
	Schedule   string
	Recipients []string
	// WindowDays is how many trailing days the coverage section covers.
	WindowDays int
	Today      func() string
	Now        func() time.Time
}

// Report is the data behind one daily report.
type Report struct {
	Date            string         `json:"date"`
	LongDate        string         `json:"-"`
	Start           string         `json:"start"`
	End             string         `json:"end"`
	Days            int            `json:"days"`
	Coverage        calendar.Stats `json:"coverage"`
	MissingDates    []string       `json:"missingDates"`
	PendingDisputes int            `json:"pendingDisputes"`
	NewUsers        int            `json:"newUsers"`
	NewGames        int            `json:"newGames"`
}

// ReportResult is stored as the run's result payload.
type ReportResult struct {
	Report Report         `json:"report"`
	Sent   int            `json:"sent"`
	Emails []email.Result `json:"emails"`
}

// BuildReport gathers the report for today, covering the trailing window
// of days ending today and activity since now minus 24 hours.
func BuildReport(ctx context.Context, store ReportStore, today string, now time.Time, windowDays int) (Report, error) {
	if windowDays <= 0 {
		windowDays = defaultReportWindow
	}
	start, err := timeutil.AddDays(today, -(windowDays - 1))
	if err != nil {
		return Report{}, fmt.Errorf("report window: %w", err)
	}
	filled, err := store.FilledDates(ctx, start, today)
	if err != nil {
		return Report{}, fmt.Errorf("filled dates: %w", err)
	}
	set := calendar.NewDateSet(filled...)
	stats, err := calendar.RangeStats(start, today, today, set)
	if err != nil {
		return Report{}, err
	}
	missing, err := calendar.MissingDates(start, today, today, set)
	if err != nil {
		return Report{}, err
	}
	if missing == nil {
		missing = []string{}
	}

	pending, err := store.CountDisputes(ctx, disputes.StatusPending)
	if err != nil {
		return Report{}, fmt.Errorf("pending disputes: %w", err)
	}
	since := now.Add(-24 * time.Hour)
	newUsers, err := store.CountUsersSince(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("new users: %w", err)
	}
	newGames, err := store.CountPlayerGamesSince(ctx, since)
	if err != nil {
		return Report{}, fmt.Errorf("new games: %w", err)
	}

	return Report{
		Date:            today,
		LongDate:        timeutil.FormatLongDate(today),
		Start:           start,
		End:             today,
		Days:            windowDays,
		Coverage:        stats,
		MissingDates:    missing,
		PendingDisputes: pending,
		NewUsers:        newUsers,
		NewGames:        newGames,
	}, nil
}

// RenderReport produces the email subject and bodies.
func RenderReport(r Report) (subject, text, html string, err error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := textReport.Execute(&textBuf, r); err != nil {
		return "", "", "", fmt.Errorf("render text report: %w", err)
	}
	if err := htmlReport.Execute(&htmlBuf, r); err != nil {
		return "", "", "", fmt.Errorf("render html report: %w", err)
	}
	subject = fmt.Sprintf("Trivia daily report: %s", r.LongDate)
	return subject, textBuf.String(), htmlBuf.String(), nil
}

// DailyReport builds the daily report job. Each recipient is sent to
// independently; the run fails only when every send fails.
func DailyReport(store ReportStore, sender email.Sender, cfg ReportConfig, logger *slog.Logger) Job {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	today := cfg.Today
	if today == nil {
		today = func() string { return timeutil.FormatDate(now().UTC()) }
	}
	return Job{
		Name:     DailyReportName,
		Schedule: cfg.Schedule,
		Run: func(ctx context.Context) (any, error) {
			report, err := BuildReport(ctx, store, today(), now(), cfg.WindowDays)
			if err != nil {
				return nil, err
			}
			subject, text, html, err := RenderReport(report)
			if err != nil {
				return nil, err
			}
			results := email.SendEach(ctx, sender, logging.With(logger, logging.FieldJob, DailyReportName), cfg.Recipients, subject, text, html)
			out := ReportResult{Report: report, Sent: email.CountSent(results), Emails: results}
			if len(cfg.Recipients) > 0 && out.Sent == 0 {
				return out, errors.New("daily report could not be sent to any recipient")
			}
			return out, nil
		},
	}
}
