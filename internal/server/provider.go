package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/trivia-admin-service/internal/config"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers/fixture"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers/jarchive"
)

const (
	providerFixture  = "fixture"
	providerJArchive = "jarchive"
)

func selectProvider(cfg config.ArchiveConfig, logger *slog.Logger) providers.ArchiveProvider {
	switch strings.ToLower(cfg.Provider) {
	case providerFixture, "":
		return fixture.New(cfg.FixtureFailDates...)
	case providerJArchive:
		return jarchive.NewClient(jarchive.Config{
			BaseURL:    cfg.BaseURL,
			UserAgent:  cfg.UserAgent,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		})
	default:
		logging.Warn(logger, "unknown archive provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New(cfg.FixtureFailDates...)
	}
}
