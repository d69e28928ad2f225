package server

import (
	"log/slog"

	"github.com/preston-bernstein/trivia-admin-service/internal/archivecache"
	"github.com/preston-bernstein/trivia-admin-service/internal/config"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
)

// providerFactory assembles the archive provider with its shared wrappers.
// From the outside in: disk cache, retry, pacing, upstream.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.ArchiveConfig) providers.ArchiveProvider {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)

	// The fixture is in-process and gets neither pacing nor a cache.
	if name == providerFixture {
		return providers.NewRetryingProvider(base, f.logger, f.metrics, name, cfg.RetryAttempts, cfg.RetryBackoff)
	}

	limited := providers.NewRateLimitedProvider(base, providers.NewLimiter(cfg.MinInterval), f.logger)
	retrying := providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.RetryAttempts, cfg.RetryBackoff)
	if !cfg.CacheEnabled || cfg.CacheDir == "" {
		return retrying
	}
	logging.Info(f.logger, "archive cache enabled", "dir", cfg.CacheDir)
	return archivecache.NewCachedProvider(retrying, cfg.CacheDir, f.logger)
}
