// Package disputes lets admins review answer disputes.
package disputes

import (
	"context"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domaindisputes "github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store is the slice of storage the service needs.
type Store interface {
	ListDisputes(ctx context.Context, f domaindisputes.Filter) ([]domaindisputes.Dispute, int, error)
	GetDispute(ctx context.Context, id string) (domaindisputes.Dispute, error)
	ResolveDispute(ctx context.Context, id string, res domaindisputes.Resolution, at time.Time) (domaindisputes.Dispute, error)
	CountDisputes(ctx context.Context, status domaindisputes.Status) (int, error)
}

// Service coordinates dispute review.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a Service; now defaults to time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// List returns one page of disputes.
func (s *Service) List(ctx context.Context, f domaindisputes.Filter) (domaindisputes.Page, error) {
	if f.Status != "" && !f.Status.Valid() {
		return domaindisputes.Page{}, domain.Invalid("invalid status %q", f.Status)
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	list, total, err := s.store.ListDisputes(ctx, f)
	if err != nil {
		return domaindisputes.Page{}, err
	}
	pages := (total + f.PageSize - 1) / f.PageSize
	return domaindisputes.Page{
		Disputes: list,
		Pagination: domaindisputes.Pagination{
			Page:       f.Page,
			PageSize:   f.PageSize,
			Total:      total,
			TotalPages: pages,
		},
	}, nil
}

// Get returns one dispute.
func (s *Service) Get(ctx context.Context, id string) (domaindisputes.Dispute, error) {
	return s.store.GetDispute(ctx, id)
}

// Resolve approves or rejects a pending dispute.
func (s *Service) Resolve(ctx context.Context, id string, res domaindisputes.Resolution) (domaindisputes.Dispute, error) {
	if res.Status != domaindisputes.StatusApproved && res.Status != domaindisputes.StatusRejected {
		return domaindisputes.Dispute{}, domain.Invalid("resolution must be approved or rejected")
	}
	current, err := s.store.GetDispute(ctx, id)
	if err != nil {
		return domaindisputes.Dispute{}, err
	}
	if current.Status != domaindisputes.StatusPending {
		return domaindisputes.Dispute{}, domain.Conflict("dispute %s is already %s", id, current.Status)
	}
	return s.store.ResolveDispute(ctx, id, res, s.now().UTC())
}

// PendingCount counts disputes awaiting review.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	return s.store.CountDisputes(ctx, domaindisputes.StatusPending)
}
