package guests

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	domainguests "github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

func TestUpdateValidates(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil, nil)
	cases := []domainguests.Config{
		{Enabled: true, MaxGamesPerDay: 500, AllowedModes: []string{"daily"}, SessionTTLHours: 24},
		{Enabled: true, MaxGamesPerDay: 3, AllowedModes: []string{"ranked"}, SessionTTLHours: 24},
		{Enabled: true, MaxGamesPerDay: 3, SessionTTLHours: 24},
		{Enabled: true, MaxGamesPerDay: 3, AllowedModes: []string{"daily"}, SessionTTLHours: 0},
	}
	for i, cfg := range cases {
		if _, err := svc.Update(context.Background(), cfg); err == nil {
			t.Fatalf("case %d: expected rejection", i)
		} else if _, ok := domain.AsValidation(err); !ok {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUpdateStampsTime(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	svc := NewService(store.NewMemoryStore(), nil, func() time.Time { return now })
	cfg := domainguests.Default()
	cfg.MaxGamesPerDay = 5

	saved, err := svc.Update(context.Background(), cfg)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !saved.UpdatedAt.Equal(now) {
		t.Fatalf("expected updatedAt %v, got %v", now, saved.UpdatedAt)
	}
	got, _ := svc.Config(context.Background())
	if got.MaxGamesPerDay != 5 {
		t.Fatalf("expected saved value, got %d", got.MaxGamesPerDay)
	}
}
