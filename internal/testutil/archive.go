package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
)

// StubArchive is a scripted archive provider. Dates listed in Errs fail;
// any other date returns Games[date] or, when absent, a generated game.
type StubArchive struct {
	Games map[string]questions.FetchedGame
	Errs  map[string]error
	// Clues per generated game.
	Clues int

	mu    sync.Mutex
	calls []string
	// Notify is closed on the first call.
	Notify chan struct{}
}

// FetchGameByDate returns the scripted result for date.
func (s *StubArchive) FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error) {
	s.record(date)
	if err := ctx.Err(); err != nil {
		return questions.FetchedGame{}, err
	}
	if err := s.Errs[date]; err != nil {
		return questions.FetchedGame{}, err
	}
	if g, ok := s.Games[date]; ok {
		return g, nil
	}
	n := s.Clues
	if n == 0 {
		n = 4
	}
	return SampleGame(date, n), nil
}

// FetchGameByID searches the scripted games by id.
func (s *StubArchive) FetchGameByID(_ context.Context, gameID string) (questions.FetchedGame, error) {
	s.record("id:" + gameID)
	for _, g := range s.Games {
		if g.GameID == gameID {
			return g, nil
		}
	}
	return questions.FetchedGame{}, &providers.NotFoundError{GameID: gameID}
}

// Calls returns the recorded requests in order.
func (s *StubArchive) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *StubArchive) record(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key)
	if s.Notify != nil && len(s.calls) == 1 {
		close(s.Notify)
	}
}

// UnavailableArchive fails every request with ErrProviderUnavailable.
type UnavailableArchive struct{}

func (UnavailableArchive) FetchGameByDate(context.Context, string) (questions.FetchedGame, error) {
	return questions.FetchedGame{}, providers.ErrProviderUnavailable
}

func (UnavailableArchive) FetchGameByID(context.Context, string) (questions.FetchedGame, error) {
	return questions.FetchedGame{}, providers.ErrProviderUnavailable
}

// ErrArchive fails every request with Err.
type ErrArchive struct {
	Err error
}

func (e ErrArchive) FetchGameByDate(context.Context, string) (questions.FetchedGame, error) {
	return questions.FetchedGame{}, e.errOrDefault()
}

func (e ErrArchive) FetchGameByID(context.Context, string) (questions.FetchedGame, error) {
	return questions.FetchedGame{}, e.errOrDefault()
}

func (e ErrArchive) errOrDefault() error {
	if e.Err == nil {
		return errors.New("archive failure")
	}
	return e.Err
}
