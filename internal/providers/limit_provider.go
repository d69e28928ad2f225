package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider waits on a shared Limiter before every upstream call.
type rateLimitedProvider struct {
	next    ArchiveProvider
	limiter *Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns an ArchiveProvider whose calls are spaced by limiter.
func NewRateLimitedProvider(next ArchiveProvider, limiter *Limiter, logger *slog.Logger) ArchiveProvider {
	return &rateLimitedProvider{next: next, limiter: limiter, logger: logger}
}

func (p *rateLimitedProvider) FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error) {
	if err := p.wait(ctx, slog.String(logging.FieldDate, date)); err != nil {
		return questions.FetchedGame{}, err
	}
	return p.next.FetchGameByDate(ctx, date)
}

func (p *rateLimitedProvider) FetchGameByID(ctx context.Context, gameID string) (questions.FetchedGame, error) {
	if err := p.wait(ctx, slog.String(logging.FieldGameID, gameID)); err != nil {
		return questions.FetchedGame{}, err
	}
	return p.next.FetchGameByID(ctx, gameID)
}

func (p *rateLimitedProvider) wait(ctx context.Context, target slog.Attr) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, logging.FromContext(ctx, p.logger), slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", target)
		return err
	}
	logWithProvider(ctx, logging.FromContext(ctx, p.logger), slog.LevelDebug, rateLimitedName, "rate-limited provider fetch", target)
	return nil
}
