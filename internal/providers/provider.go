package providers

import (
	"context"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// ArchiveProvider fetches complete games from a trivia archive.
// Dates are YYYY-MM-DD air dates; game ids are the archive's own identifiers.
type ArchiveProvider interface {
	FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error)
	FetchGameByID(ctx context.Context, gameID string) (questions.FetchedGame, error)
}
