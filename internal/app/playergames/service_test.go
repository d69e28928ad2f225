package playergames

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domaingames "github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

func newService() *Service {
	mem := store.NewMemoryStore()
	store.SeedDemo(mem, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))
	return NewService(mem)
}

func TestListFiltersByStatus(t *testing.T) {
	svc := newService()
	page, err := svc.List(context.Background(), domaingames.Filter{Status: domaingames.StatusInProgress})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 in-progress games, got %d", page.Total)
	}
}

func TestUpdateRejectsImpossibleCorrectCount(t *testing.T) {
	svc := newService()
	n := 99
	_, err := svc.Update(context.Background(), "game-2", domaingames.Update{CorrectCount: &n})
	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := newService()
	st := domaingames.StatusAbandoned
	g, err := svc.Update(context.Background(), "game-1", domaingames.Update{Status: &st})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.Status != domaingames.StatusAbandoned {
		t.Fatalf("expected abandoned, got %s", g.Status)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if err := svc.Delete(ctx, "game-3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "game-3"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
