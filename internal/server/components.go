package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/config"
	"github.com/preston-bernstein/trivia-admin-service/internal/email"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
	"github.com/preston-bernstein/trivia-admin-service/internal/store/postgres"
)

// openPostgres is a var so tests can avoid a real database.
var openPostgres = func(ctx context.Context, cfg postgres.Config, logger *slog.Logger) (store.Store, error) {
	return postgres.Open(ctx, cfg, logger)
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "memory", "":
		ms := store.NewMemoryStore()
		if cfg.Seed {
			store.SeedDemo(ms, time.Now())
			logging.Info(logger, "memory store seeded with demo data")
		}
		return ms, nil
	case "postgres", "postgresql":
		st, err := openPostgres(ctx, postgres.Config{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.MaxConns,
			Migrate:     cfg.Migrate,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("open store: unknown driver %q", cfg.Driver)
	}
}

// buildSender falls back to logging messages when SendGrid cannot be configured.
func buildSender(cfg config.EmailConfig, logger *slog.Logger) email.Sender {
	switch strings.ToLower(cfg.Provider) {
	case "log", "":
		return email.NewLogSender(logger)
	case "sendgrid":
		sender, err := email.NewSendgridSender(cfg.APIKey, cfg.FromName, cfg.FromAddress)
		if err != nil {
			logging.Warn(logger, "sendgrid unavailable, logging emails instead", logging.FieldError, err)
			return email.NewLogSender(logger)
		}
		return sender
	default:
		logging.Warn(logger, "unknown email provider, logging emails instead", logging.FieldProvider, cfg.Provider)
		return email.NewLogSender(logger)
	}
}
