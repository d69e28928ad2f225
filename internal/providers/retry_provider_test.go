package providers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
)

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, slog.Default(), rec, "flakey", 3, time.Millisecond)

	game, err := rp.FetchGameByDate(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if game.GameID != "game-2025-01-01" {
		t.Fatalf("unexpected game %+v", game)
	}
	if fp.calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls.Load())
	}
	if rec.ProviderCalls("flakey") != 3 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond)

	if _, err := rp.FetchGameByID(context.Background(), "9289"); err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls.Load())
	}
}

func TestRetryingProviderDoesNotRetryNotFound(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: &NotFoundError{Date: "2025-01-04", Suggestion: "try a weekday"}}
	rp := NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Millisecond)

	_, err := rp.FetchGameByDate(context.Background(), "2025-01-04")
	if Suggestion(err) != "try a weekday" {
		t.Fatalf("expected suggestion to survive, got %v", err)
	}
	if fp.calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls.Load())
	}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: 2 * time.Millisecond}}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, nil, rec, "jarchive", 2, time.Millisecond)

	if _, err := rp.FetchGameByDate(context.Background(), "2025-01-01"); err != nil {
		t.Fatalf("expected success after rate limit, got %v", err)
	}
	if rec.RateLimitHits("jarchive") != 1 || rec.LastRetryAfter("jarchive") != 2*time.Millisecond {
		t.Fatalf("expected rate limit recorded, got %+v", rec.Snapshot("jarchive"))
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := rp.FetchGameByDate(ctx, "2025-01-01")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestRetryingProviderNilInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "none", 1, time.Millisecond)
	if _, err := rp.FetchGameByDate(context.Background(), "2025-01-01"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
