package store

import (
	"context"
	"errors"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// QuestionFilter narrows a question listing. Empty fields match everything;
// Start/End bound the air date inclusively.
type QuestionFilter struct {
	AirDate  string
	Start    string
	End      string
	Round    questions.Round
	Category string
	Search   string
	Limit    int
	Offset   int
}

// CategorySummary counts stored clues per category name.
type CategorySummary struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

// QuestionStore persists clues.
type QuestionStore interface {
	InsertQuestions(ctx context.Context, records []questions.QuestionRecord) (int, error)
	ListQuestions(ctx context.Context, f QuestionFilter) ([]questions.QuestionRecord, int, error)
	GetQuestion(ctx context.Context, id string) (questions.QuestionRecord, error)
	UpdateQuestion(ctx context.Context, q questions.QuestionRecord) (questions.QuestionRecord, error)
	DeleteQuestion(ctx context.Context, id string) error
	DeleteQuestionsInRange(ctx context.Context, start, end string) (int, error)
	CountQuestions(ctx context.Context) (int, error)
	FilledDates(ctx context.Context, start, end string) ([]string, error)
	DateSummaries(ctx context.Context, start, end string) ([]questions.DateSummary, error)
	ListCategories(ctx context.Context) ([]CategorySummary, error)
}

// UserStore persists player accounts.
type UserStore interface {
	ListUsers(ctx context.Context, f users.Filter) ([]users.User, int, error)
	GetUser(ctx context.Context, id string) (users.User, error)
	UpdateUser(ctx context.Context, id string, u users.Update) (users.User, error)
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
	CountUsersSince(ctx context.Context, since time.Time) (int, error)
}

// PlayerGameStore persists played games.
type PlayerGameStore interface {
	ListPlayerGames(ctx context.Context, f playergames.Filter) ([]playergames.Game, int, error)
	GetPlayerGame(ctx context.Context, id string) (playergames.Game, error)
	UpdatePlayerGame(ctx context.Context, id string, u playergames.Update) (playergames.Game, error)
	DeletePlayerGame(ctx context.Context, id string) error
	CountPlayerGames(ctx context.Context) (int, error)
	CountPlayerGamesSince(ctx context.Context, since time.Time) (int, error)
}

// DisputeStore persists answer disputes.
type DisputeStore interface {
	ListDisputes(ctx context.Context, f disputes.Filter) ([]disputes.Dispute, int, error)
	GetDispute(ctx context.Context, id string) (disputes.Dispute, error)
	ResolveDispute(ctx context.Context, id string, res disputes.Resolution, at time.Time) (disputes.Dispute, error)
	CountDisputes(ctx context.Context, status disputes.Status) (int, error)
}

// CronLogStore records job runs.
type CronLogStore interface {
	StartCronRun(ctx context.Context, e cronlogs.Entry) (cronlogs.Entry, error)
	FinishCronRun(ctx context.Context, e cronlogs.Entry) error
	ListCronRuns(ctx context.Context, job string, limit int) ([]cronlogs.Entry, error)
	PruneCronRuns(ctx context.Context, before time.Time) (int, error)
}

// GuestConfigStore persists the single guest configuration.
type GuestConfigStore interface {
	GetGuestConfig(ctx context.Context) (guests.Config, error)
	SaveGuestConfig(ctx context.Context, cfg guests.Config) (guests.Config, error)
}

// Store is everything the admin service persists.
type Store interface {
	QuestionStore
	UserStore
	PlayerGameStore
	DisputeStore
	CronLogStore
	GuestConfigStore
	Ping(ctx context.Context) error
	Close()
}

// PageBounds converts a 1-based page and size into offset/limit, applying
// defaults and a ceiling on size.
func PageBounds(page, size, defaultSize, maxSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return (page - 1) * size, size
}

// window applies offset/limit to n items and returns the slice bounds.
func window(n, offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
