package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
)

// GameFailure records one game storage rejected.
type GameFailure struct {
	GameID  string `json:"gameId"`
	AirDate string `json:"airDate,omitempty"`
	Error   string `json:"error"`
}

// PushResult summarises a finished push loop. Successes and failures are
// counted independently; nothing is rolled back.
type PushResult struct {
	Pushed    int            `json:"pushed"`
	Failed    int            `json:"failed"`
	Questions int            `json:"questions"`
	Failures  []GameFailure  `json:"failures"`
	Message   string         `json:"message"`
	Coverage  calendar.Stats `json:"coverage"`
}

// PushMessage is the operator-facing summary of a push.
func PushMessage(pushed, failed int) string {
	return fmt.Sprintf("Pushed %d games, %d failed", pushed, failed)
}

// Push stores every selected game, one at a time.
func (r *Run) Push(ctx context.Context) (PushResult, error) {
	games, err := r.beginPush()
	if err != nil {
		return PushResult{}, err
	}
	return r.pushGames(ctx, games), nil
}

func (r *Run) beginPush() ([]questions.FetchedGame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy() {
		return nil, ErrBusy
	}
	var games []questions.FetchedGame
	for _, g := range r.candidates {
		if r.selected[g.GameID] {
			games = append(games, g)
		}
	}
	if len(games) == 0 {
		return nil, domain.Invalid("Select at least one game to push")
	}
	r.state = StatePushing
	r.touch()
	return games, nil
}

func (r *Run) pushGames(ctx context.Context, games []questions.FetchedGame) PushResult {
	logger := logging.With(logging.FromContext(ctx, r.deps.Logger), slog.String(logging.FieldRunID, r.id))
	result := PushResult{Failures: []GameFailure{}}
	pushed := make(map[string]bool, len(games))

	for i, g := range games {
		n, err := r.deps.Content.PushGame(ctx, g)
		r.deps.Recorder.RecordIngestItem(metrics.PhasePush, err)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, GameFailure{GameID: g.GameID, AirDate: g.AirDate, Error: err.Error()})
			logging.Warn(logger, "push game failed",
				slog.String(logging.FieldGameID, g.GameID),
				slog.String(logging.FieldDate, g.AirDate),
				slog.Any(logging.FieldError, err),
			)
		} else {
			result.Pushed++
			result.Questions += n
			pushed[g.GameID] = true
		}
		r.setProgress(Progress{RunID: r.id, Phase: PhasePush, Current: i + 1, Total: len(games), Date: g.AirDate})
	}
	result.Message = PushMessage(result.Pushed, result.Failed)

	r.mu.Lock()
	start, end := r.start, r.end
	remaining := make([]questions.FetchedGame, 0, len(r.candidates))
	for _, g := range r.candidates {
		if !pushed[g.GameID] {
			remaining = append(remaining, g)
		}
	}
	r.candidates = remaining
	r.selected = make(map[string]bool)
	r.mu.Unlock()

	if start != "" && end != "" {
		if filled, err := r.deps.Content.FilledSet(ctx, start, end); err != nil {
			logging.Warn(logger, "coverage refresh failed", slog.Any(logging.FieldError, err))
		} else if stats, err := calendar.RangeStats(start, end, r.deps.Content.Today(), filled); err == nil {
			result.Coverage = stats
		}
	}

	logging.Info(logger, "push finished", slog.Int("pushed", result.Pushed), slog.Int("failed", result.Failed))

	r.mu.Lock()
	r.message = result.Message
	r.lastPush = &result
	r.state = StateIdle
	r.mu.Unlock()

	r.setProgress(Progress{RunID: r.id, Phase: PhasePush, Current: len(games), Total: len(games), Done: true, Message: result.Message})
	return result
}
