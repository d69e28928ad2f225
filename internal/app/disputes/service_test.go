package disputes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domaindisputes "github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

var fixedNow = time.Date(2025, 11, 10, 15, 0, 0, 0, time.UTC)

func newService() *Service {
	mem := store.NewMemoryStore()
	store.SeedDemo(mem, fixedNow)
	return NewService(mem, func() time.Time { return fixedNow })
}

func TestListPagination(t *testing.T) {
	svc := newService()
	page, err := svc.List(context.Background(), domaindisputes.Filter{Status: domaindisputes.StatusPending, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.Page != 1 || page.Pagination.Total != 3 || page.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination %+v", page.Pagination)
	}
	if len(page.Disputes) != 2 {
		t.Fatalf("expected 2 disputes, got %d", len(page.Disputes))
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := newService()
	if _, err := svc.List(context.Background(), domaindisputes.Filter{Status: "weird"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestResolveOnlyOnce(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	d, err := svc.Resolve(ctx, "dispute-1", domaindisputes.Resolution{Status: domaindisputes.StatusRejected, Note: "no"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.ResolvedAt == nil || !d.ResolvedAt.Equal(fixedNow) {
		t.Fatalf("expected resolvedAt from clock, got %v", d.ResolvedAt)
	}
	if _, err := svc.Resolve(ctx, "dispute-1", domaindisputes.Resolution{Status: domaindisputes.StatusApproved}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on second resolve, got %v", err)
	}
	if n, _ := svc.PendingCount(ctx); n != 2 {
		t.Fatalf("expected 2 pending, got %d", n)
	}
}

func TestResolveRejectsPendingStatus(t *testing.T) {
	svc := newService()
	_, err := svc.Resolve(context.Background(), "dispute-1", domaindisputes.Resolution{Status: domaindisputes.StatusPending})
	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}
