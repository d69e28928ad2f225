package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps an ArchiveProvider with retry/backoff behavior.
// Not-found answers are final and never retried.
type retryingProvider struct {
	inner       ArchiveProvider
	logger      *slog.Logger
	recorder    *metrics.Recorder
	name        string
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner ArchiveProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) ArchiveProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		recorder:    recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error) {
	return r.do(ctx, slog.String(logging.FieldDate, date), func(ctx context.Context) (questions.FetchedGame, error) {
		return r.inner.FetchGameByDate(ctx, date)
	})
}

func (r *retryingProvider) FetchGameByID(ctx context.Context, gameID string) (questions.FetchedGame, error) {
	return r.do(ctx, slog.String(logging.FieldGameID, gameID), func(ctx context.Context) (questions.FetchedGame, error) {
		return r.inner.FetchGameByID(ctx, gameID)
	})
}

func (r *retryingProvider) do(ctx context.Context, target slog.Attr, fetch func(context.Context) (questions.FetchedGame, error)) (questions.FetchedGame, error) {
	if r.inner == nil {
		return questions.FetchedGame{}, ErrProviderUnavailable
	}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		game, err := fetch(ctx)
		r.recorder.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return game, nil
		}
		lastErr = err

		if _, notFound := AsNotFoundError(err); notFound {
			return questions.FetchedGame{}, err
		}

		delay := r.backoffFn(attempt)
		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.name, rl.RetryAfter)
			if rl.RetryAfter > delay {
				delay = rl.RetryAfter
			}
		}

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "archive fetch retry", target, slog.Int(logging.FieldAttempt, attempt), slog.Int("max_attempts", r.maxAttempts), slog.Any("err", err))

		select {
		case <-ctx.Done():
			return questions.FetchedGame{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "archive fetch failed", target, slog.Int("attempts", r.maxAttempts), slog.Any("err", lastErr))
	return questions.FetchedGame{}, lastErr
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.name, msg, args...)
}
