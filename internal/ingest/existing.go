package ingest

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

// DeleteResult summarises removal of stored dates.
type DeleteResult struct {
	Dates     []string `json:"dates"`
	Questions int      `json:"questions"`
	Failed    []string `json:"failed"`
}

// LoadExisting lists what storage already holds in [start, end], replacing
// the previous list and clearing its selection.
func (r *Run) LoadExisting(ctx context.Context, start, end string) ([]questions.DateSummary, error) {
	if _, err := validateRange(start, end, r.deps.MaxRangeDays); err != nil {
		return nil, err
	}
	r.mu.Lock()
	busy := r.busy()
	r.mu.Unlock()
	if busy {
		return nil, ErrBusy
	}

	sums, err := r.deps.Content.DateSummaries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.existing = sums
	r.existingSelected = make(map[string]bool)
	r.touch()
	return sums, nil
}

// ToggleExisting flips the selection of one stored date.
func (r *Run) ToggleExisting(date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy() {
		return ErrBusy
	}
	found := false
	for _, s := range r.existing {
		if s.AirDate == date {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownCandidate
	}
	if r.existingSelected[date] {
		delete(r.existingSelected, date)
	} else {
		r.existingSelected[date] = true
	}
	r.touch()
	return nil
}

// DeleteExisting removes the questions of every selected stored date once
// the operator has typed "delete <n> dates".
func (r *Run) DeleteExisting(ctx context.Context, confirmation string) (DeleteResult, error) {
	r.mu.Lock()
	if r.busy() {
		r.mu.Unlock()
		return DeleteResult{}, ErrBusy
	}
	var dates []string
	for _, s := range r.existing {
		if r.existingSelected[s.AirDate] {
			dates = append(dates, s.AirDate)
		}
	}
	r.mu.Unlock()

	if len(dates) == 0 {
		return DeleteResult{}, domain.Invalid("Select at least one date to delete")
	}
	if err := dashboard.Confirm(dashboard.ConfirmDeleteDates, strconv.Itoa(len(dates)), confirmation); err != nil {
		return DeleteResult{}, err
	}

	logger := logging.FromContext(ctx, r.deps.Logger)
	result := DeleteResult{Dates: []string{}, Failed: []string{}}
	deleted := make(map[string]bool, len(dates))
	for _, d := range dates {
		n, err := r.deps.Content.DeleteRange(ctx, d, d)
		if err != nil {
			logging.Warn(logger, "delete date failed", slog.String(logging.FieldDate, d), slog.Any(logging.FieldError, err))
			result.Failed = append(result.Failed, d)
			continue
		}
		deleted[d] = true
		result.Dates = append(result.Dates, d)
		result.Questions += n
	}

	r.mu.Lock()
	kept := make([]questions.DateSummary, 0, len(r.existing))
	for _, s := range r.existing {
		if !deleted[s.AirDate] {
			kept = append(kept, s)
		}
	}
	r.existing = kept
	r.existingSelected = make(map[string]bool)
	r.touch()
	r.mu.Unlock()
	return result, nil
}
