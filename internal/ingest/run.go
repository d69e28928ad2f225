// Package ingest runs batch fetch-review-push sessions against the trivia
// archive. Each Run walks Idle -> Fetching -> Reviewing -> Pushing -> Idle;
// loops are sequential and paced by the provider chain.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// State of a run.
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateReviewing State = "reviewing"
	StatePushing   State = "pushing"
)

// Phase of a progress update.
type Phase string

const (
	PhaseFetch Phase = "fetch"
	PhasePush  Phase = "push"
)

var (
	// ErrBusy is returned when a fetch or push is already in progress.
	ErrBusy = errors.New("ingest: run is busy")
	// ErrRunNotFound is returned for unknown run ids.
	ErrRunNotFound = errors.New("ingest: run not found")
	// ErrUnknownCandidate is returned when toggling an id or date the run does not hold.
	ErrUnknownCandidate = errors.New("ingest: not in the current list")
)

// Content is the storage side of a run.
type Content interface {
	PushGame(ctx context.Context, game questions.FetchedGame) (int, error)
	FilledSet(ctx context.Context, start, end string) (calendar.DateSet, error)
	DateSummaries(ctx context.Context, start, end string) ([]questions.DateSummary, error)
	DeleteRange(ctx context.Context, start, end string) (int, error)
	Today() string
}

// Deps are shared by every run of a manager.
type Deps struct {
	Provider     providers.ArchiveProvider
	Content      Content
	Logger       *slog.Logger
	Recorder     *metrics.Recorder
	MaxRangeDays int
}

// Progress is published after every processed item.
type Progress struct {
	RunID   string `json:"runId"`
	Phase   Phase  `json:"phase"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Date    string `json:"date,omitempty"`
	Done    bool   `json:"done"`
	Message string `json:"message,omitempty"`
}

// Run is one operator's batch session. Each fetch replaces the candidate
// list and starts with every new candidate selected; the selection is always
// a subset of the current candidates.
type Run struct {
	id   string
	deps Deps

	mu               sync.Mutex
	state            State
	start, end       string
	candidates       []questions.FetchedGame
	selected         map[string]bool
	failures         []DateFailure
	existing         []questions.DateSummary
	existingSelected map[string]bool
	progress         Progress
	message          string
	lastPush         *PushResult
	createdAt        time.Time
	updatedAt        time.Time

	subMu  sync.Mutex
	subs   map[int]chan Progress
	nextID int
}

// NewRun constructs an idle run.
func NewRun(id string, deps Deps) *Run {
	now := time.Now().UTC()
	return &Run{
		id:               id,
		deps:             deps,
		state:            StateIdle,
		selected:         make(map[string]bool),
		existingSelected: make(map[string]bool),
		subs:             make(map[int]chan Progress),
		createdAt:        now,
		updatedAt:        now,
	}
}

// ID returns the run id.
func (r *Run) ID() string { return r.id }

// State returns the current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// busy reports whether a loop is running; callers hold mu.
func (r *Run) busy() bool {
	return r.state == StateFetching || r.state == StatePushing
}

// validateRange checks a user-entered range before any network call.
func validateRange(start, end string, maxDays int) ([]string, error) {
	if start == "" || end == "" {
		return nil, domain.Invalid("Please select both start and end dates")
	}
	if !timeutil.ValidDate(start) || !timeutil.ValidDate(end) {
		return nil, domain.Invalid("Dates must be in YYYY-MM-DD format")
	}
	if timeutil.IsAfter(start, end) {
		return nil, domain.Invalid("Start date must be before end date")
	}
	dates, err := timeutil.DatesInRange(start, end)
	if err != nil {
		return nil, domain.Invalid("%v", err)
	}
	if maxDays > 0 && len(dates) > maxDays {
		return nil, domain.Invalid("Range is limited to %d days", maxDays)
	}
	return dates, nil
}

// Toggle flips the selection of one fetched game.
func (r *Run) Toggle(gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy() {
		return ErrBusy
	}
	if !r.hasCandidate(gameID) {
		return ErrUnknownCandidate
	}
	if r.selected[gameID] {
		delete(r.selected, gameID)
	} else {
		r.selected[gameID] = true
	}
	r.touch()
	return nil
}

// SelectAll selects every fetched game.
func (r *Run) SelectAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy() {
		return ErrBusy
	}
	r.selected = make(map[string]bool, len(r.candidates))
	for _, g := range r.candidates {
		r.selected[g.GameID] = true
	}
	r.touch()
	return nil
}

// SelectNone clears the selection.
func (r *Run) SelectNone() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy() {
		return ErrBusy
	}
	r.selected = make(map[string]bool)
	r.touch()
	return nil
}

func (r *Run) hasCandidate(gameID string) bool {
	for _, g := range r.candidates {
		if g.GameID == gameID {
			return true
		}
	}
	return false
}

// touch records a mutation; callers hold mu.
func (r *Run) touch() {
	r.updatedAt = time.Now().UTC()
}

// setProgress stores p and fans it out to subscribers.
func (r *Run) setProgress(p Progress) {
	r.mu.Lock()
	r.progress = p
	r.touch()
	r.mu.Unlock()
	r.publish(p)
}
