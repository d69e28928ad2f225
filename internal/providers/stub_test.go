package providers

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    atomic.Int32
}

func (f *flakeyProvider) fetch(id string) (questions.FetchedGame, error) {
	n := int(f.calls.Add(1))
	if n <= f.failures {
		if f.err != nil {
			return questions.FetchedGame{}, f.err
		}
		return questions.FetchedGame{}, errors.New("boom")
	}
	return questions.FetchedGame{GameID: id}, nil
}

func (f *flakeyProvider) FetchGameByDate(_ context.Context, date string) (questions.FetchedGame, error) {
	return f.fetch("game-" + date)
}

func (f *flakeyProvider) FetchGameByID(_ context.Context, gameID string) (questions.FetchedGame, error) {
	return f.fetch(gameID)
}
