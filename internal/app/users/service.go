// Package users manages player accounts and admin email to them.
package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domainusers "github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/email"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

// Store is the slice of storage the user service needs.
type Store interface {
	ListUsers(ctx context.Context, f domainusers.Filter) ([]domainusers.User, int, error)
	GetUser(ctx context.Context, id string) (domainusers.User, error)
	UpdateUser(ctx context.Context, id string, u domainusers.Update) (domainusers.User, error)
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
	CountUsersSince(ctx context.Context, since time.Time) (int, error)
}

// Page is one page of users.
type Page struct {
	Users []domainusers.User `json:"users"`
	Total int                `json:"total"`
}

// Service coordinates user operations.
type Service struct {
	store  Store
	sender email.Sender
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(store Store, sender email.Sender, logger *slog.Logger) *Service {
	return &Service{store: store, sender: sender, logger: logger}
}

// List returns users matching f.
func (s *Service) List(ctx context.Context, f domainusers.Filter) (Page, error) {
	list, total, err := s.store.ListUsers(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Page{Users: list, Total: total}, nil
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id string) (domainusers.User, error) {
	return s.store.GetUser(ctx, id)
}

// Update applies admin edits.
func (s *Service) Update(ctx context.Context, id string, upd domainusers.Update) (domainusers.User, error) {
	if upd.DisplayName == nil && upd.Role == nil {
		return domainusers.User{}, domain.Invalid("nothing to update")
	}
	if upd.DisplayName != nil {
		trimmed := strings.TrimSpace(*upd.DisplayName)
		if trimmed == "" {
			return domainusers.User{}, domain.Invalid("display name cannot be blank")
		}
		upd.DisplayName = &trimmed
	}
	return s.store.UpdateUser(ctx, id, upd)
}

// Delete removes a user and everything they own.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteUser(ctx, id)
}

// SendEmail emails one user.
func (s *Service) SendEmail(ctx context.Context, id, subject, text, html string) (email.Result, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return email.Result{}, err
	}
	if u.Email == "" {
		return email.Result{}, domain.Invalid("user %s has no email address", id)
	}
	if err := validateContent(subject, text, html); err != nil {
		return email.Result{}, err
	}
	return email.SendEach(ctx, s.sender, s.logger, []string{u.Email}, subject, text, html)[0], nil
}

// BroadcastEmail emails each listed user independently. Unknown ids and
// users without an address are reported as failed results.
func (s *Service) BroadcastEmail(ctx context.Context, ids []string, subject, text, html string) ([]email.Result, error) {
	if len(ids) == 0 {
		return nil, domain.Invalid("at least one recipient is required")
	}
	if err := validateContent(subject, text, html); err != nil {
		return nil, err
	}
	results := make([]email.Result, 0, len(ids))
	for _, id := range ids {
		u, err := s.store.GetUser(ctx, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			results = append(results, email.Result{Recipient: id, Error: "user not found"})
			continue
		case err != nil:
			return nil, err
		case u.Email == "":
			results = append(results, email.Result{Recipient: id, Error: "no email address"})
			continue
		}
		results = append(results, email.SendEach(ctx, s.sender, s.logger, []string{u.Email}, subject, text, html)...)
	}
	return results, nil
}

func validateContent(subject, text, html string) error {
	if strings.TrimSpace(subject) == "" {
		return domain.Invalid("subject is required")
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(html) == "" {
		return domain.Invalid("message body is required")
	}
	return nil
}
