// Package playergames lets admins inspect and correct played games.
package playergames

import (
	"context"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domaingames "github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
)

// Store is the slice of storage the service needs.
type Store interface {
	ListPlayerGames(ctx context.Context, f domaingames.Filter) ([]domaingames.Game, int, error)
	GetPlayerGame(ctx context.Context, id string) (domaingames.Game, error)
	UpdatePlayerGame(ctx context.Context, id string, u domaingames.Update) (domaingames.Game, error)
	DeletePlayerGame(ctx context.Context, id string) error
	CountPlayerGames(ctx context.Context) (int, error)
	CountPlayerGamesSince(ctx context.Context, since time.Time) (int, error)
}

// Page is one page of played games.
type Page struct {
	Games []domaingames.Game `json:"games"`
	Total int                `json:"total"`
}

// Service coordinates played-game operations.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns games matching f.
func (s *Service) List(ctx context.Context, f domaingames.Filter) (Page, error) {
	list, total, err := s.store.ListPlayerGames(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Page{Games: list, Total: total}, nil
}

// Get returns one game.
func (s *Service) Get(ctx context.Context, id string) (domaingames.Game, error) {
	return s.store.GetPlayerGame(ctx, id)
}

// Update applies admin corrections. The correct count may not exceed the
// number of questions in the game.
func (s *Service) Update(ctx context.Context, id string, upd domaingames.Update) (domaingames.Game, error) {
	if upd.Score == nil && upd.CorrectCount == nil && upd.Status == nil {
		return domaingames.Game{}, domain.Invalid("nothing to update")
	}
	if upd.CorrectCount != nil {
		current, err := s.store.GetPlayerGame(ctx, id)
		if err != nil {
			return domaingames.Game{}, err
		}
		if current.QuestionCount > 0 && *upd.CorrectCount > current.QuestionCount {
			return domaingames.Game{}, domain.Invalid("correct count %d exceeds %d questions", *upd.CorrectCount, current.QuestionCount)
		}
	}
	return s.store.UpdatePlayerGame(ctx, id, upd)
}

// Delete removes a game.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeletePlayerGame(ctx, id)
}
