package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// DateFailure records one date the archive could not supply.
type DateFailure struct {
	Date       string `json:"date"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FetchResult summarises a finished fetch loop.
type FetchResult struct {
	Requested int                     `json:"requested"`
	Games     []questions.FetchedGame `json:"games"`
	Failures  []DateFailure           `json:"failures"`
	Message   string                  `json:"message"`
}

// FetchMessage is the operator-facing summary of a fetch.
func FetchMessage(games, dates int) string {
	return fmt.Sprintf("Fetched %d games out of %d dates", games, dates)
}

// Fetch loads every non-future date of [start, end] from the archive, one
// date at a time. Dates that fail are logged and left out.
func (r *Run) Fetch(ctx context.Context, start, end string) (FetchResult, error) {
	dates, err := r.beginFetch(start, end)
	if err != nil {
		return FetchResult{}, err
	}
	return r.fetchDates(ctx, dates), nil
}

// beginFetch validates the range and moves the run to Fetching, replacing
// the candidate list and clearing the selection.
func (r *Run) beginFetch(start, end string) ([]string, error) {
	dates, err := validateRange(start, end, r.deps.MaxRangeDays)
	if err != nil {
		return nil, err
	}
	today := r.deps.Content.Today()
	eligible := dates[:0]
	for _, d := range dates {
		if !timeutil.IsAfter(d, today) {
			eligible = append(eligible, d)
		}
	}
	if len(eligible) == 0 {
		return nil, domain.Invalid("Every date in the range is in the future")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy() {
		return nil, ErrBusy
	}
	r.state = StateFetching
	r.start, r.end = start, end
	r.candidates = nil
	r.selected = make(map[string]bool)
	r.failures = nil
	r.lastPush = nil
	r.message = ""
	r.touch()
	return eligible, nil
}

func (r *Run) fetchDates(ctx context.Context, dates []string) FetchResult {
	logger := logging.With(logging.FromContext(ctx, r.deps.Logger), slog.String(logging.FieldRunID, r.id))
	result := FetchResult{Requested: len(dates), Games: []questions.FetchedGame{}, Failures: []DateFailure{}}

	for i, date := range dates {
		game, err := r.deps.Provider.FetchGameByDate(ctx, date)
		r.deps.Recorder.RecordIngestItem(metrics.PhaseFetch, err)
		if err != nil {
			logging.Warn(logger, "fetch date failed",
				slog.String(logging.FieldDate, date),
				slog.Any(logging.FieldError, err),
			)
			result.Failures = append(result.Failures, DateFailure{Date: date, Error: err.Error(), Suggestion: providers.Suggestion(err)})
		} else {
			if game.AirDate == "" {
				game.AirDate = date
			}
			result.Games = append(result.Games, game)
		}
		r.setProgress(Progress{RunID: r.id, Phase: PhaseFetch, Current: i + 1, Total: len(dates), Date: date})
	}

	result.Message = FetchMessage(len(result.Games), len(dates))
	logging.Info(logger, "fetch finished",
		slog.Int(logging.FieldCount, len(result.Games)),
		slog.Int("failed", len(result.Failures)),
	)

	r.mu.Lock()
	r.candidates = result.Games
	r.selected = make(map[string]bool, len(result.Games))
	for _, g := range result.Games {
		r.selected[g.GameID] = true
	}
	r.failures = result.Failures
	r.message = result.Message
	r.state = StateReviewing
	r.mu.Unlock()

	r.setProgress(Progress{RunID: r.id, Phase: PhaseFetch, Current: len(dates), Total: len(dates), Done: true, Message: result.Message})
	return result
}
