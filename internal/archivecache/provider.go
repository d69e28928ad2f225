package archivecache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
)

// CachedProvider serves games from disk and falls through to the archive on
// a miss, writing what it fetched. Failures are never cached.
type CachedProvider struct {
	inner  providers.ArchiveProvider
	writer *Writer
	store  *FSStore
	logger *slog.Logger
}

// NewCachedProvider wraps inner with a filesystem cache rooted at basePath.
func NewCachedProvider(inner providers.ArchiveProvider, basePath string, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		writer: NewWriter(basePath),
		store:  NewFSStore(basePath),
		logger: logger,
	}
}

func (p *CachedProvider) FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error) {
	if game, err := p.store.LoadGame(date); err == nil {
		logging.Debug(logging.FromContext(ctx, p.logger), "archive cache hit", logging.FieldDate, date)
		return game, nil
	} else if !errors.Is(err, ErrNotCached) {
		logging.Warn(logging.FromContext(ctx, p.logger), "archive cache read failed", logging.FieldDate, date, "err", err)
	}

	game, err := p.inner.FetchGameByDate(ctx, date)
	if err != nil {
		return questions.FetchedGame{}, err
	}
	p.write(ctx, game)
	return game, nil
}

func (p *CachedProvider) FetchGameByID(ctx context.Context, gameID string) (questions.FetchedGame, error) {
	if game, err := p.store.LoadGameByID(gameID); err == nil {
		return game, nil
	}
	game, err := p.inner.FetchGameByID(ctx, gameID)
	if err != nil {
		return questions.FetchedGame{}, err
	}
	p.write(ctx, game)
	return game, nil
}

// Invalidate forgets the cached copy for date so the next fetch goes upstream.
func (p *CachedProvider) Invalidate(date string) error {
	return p.writer.Remove(date)
}

// CachedDates lists the air dates available offline.
func (p *CachedProvider) CachedDates() []string {
	return p.store.CachedDates()
}

func (p *CachedProvider) write(ctx context.Context, game questions.FetchedGame) {
	if game.AirDate == "" {
		return
	}
	if err := p.writer.WriteGame(game); err != nil {
		logging.Warn(logging.FromContext(ctx, p.logger), "archive cache write failed", logging.FieldDate, game.AirDate, "err", err)
	}
}
