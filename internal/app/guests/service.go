// Package guests manages the guest-play configuration.
package guests

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domainguests "github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
)

// Store is the slice of storage the service needs.
type Store interface {
	GetGuestConfig(ctx context.Context) (domainguests.Config, error)
	SaveGuestConfig(ctx context.Context, cfg domainguests.Config) (domainguests.Config, error)
}

// Service reads and updates the guest config.
type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(store Store, validate *validator.Validate, now func() time.Time) *Service {
	if validate == nil {
		validate = validator.New()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, validate: validate, now: now}
}

// Config returns the current config.
func (s *Service) Config(ctx context.Context) (domainguests.Config, error) {
	return s.store.GetGuestConfig(ctx)
}

// Update validates and saves cfg. An enabled config must allow at least
// one mode.
func (s *Service) Update(ctx context.Context, cfg domainguests.Config) (domainguests.Config, error) {
	if err := s.validate.Struct(cfg); err != nil {
		return domainguests.Config{}, domain.Invalid("invalid guest config: %v", err)
	}
	if cfg.Enabled && len(cfg.AllowedModes) == 0 {
		return domainguests.Config{}, domain.Invalid("enabled guest play needs at least one allowed mode")
	}
	cfg.UpdatedAt = s.now().UTC()
	return s.store.SaveGuestConfig(ctx, cfg)
}
