package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
)

func seedQuestions(t *testing.T, s *MemoryStore) {
	t.Helper()
	records := []questions.QuestionRecord{
		{Question: "q1", Answer: "a1", Category: "HISTORY", Round: questions.RoundSingle, AirDate: "2025-11-03"},
		{Question: "q2", Answer: "a2", Category: "HISTORY", Round: questions.RoundSingle, AirDate: "2025-11-03"},
		{Question: "q3", Answer: "a3", Category: "SCIENCE", Round: questions.RoundDouble, AirDate: "2025-11-03"},
		{Question: "q4", Answer: "a4", Category: "POETRY", Round: questions.RoundFinal, AirDate: "2025-11-05"},
		{Question: "q5", Answer: "a5", Category: "LOOSE", Round: questions.RoundSingle},
	}
	if _, err := s.InsertQuestions(context.Background(), records); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestMemoryStoreInsertAssignsIDs(t *testing.T) {
	s := NewMemoryStore()
	seedQuestions(t, s)

	list, total, err := s.ListQuestions(context.Background(), QuestionFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 || len(list) != 5 {
		t.Fatalf("expected 5 questions, got %d/%d", len(list), total)
	}
	for _, q := range list {
		if q.ID == "" || q.CreatedAt.IsZero() {
			t.Fatalf("expected id and createdAt assigned, got %+v", q)
		}
	}
}

func TestMemoryStoreListQuestionsFilters(t *testing.T) {
	s := NewMemoryStore()
	seedQuestions(t, s)
	ctx := context.Background()

	list, total, _ := s.ListQuestions(ctx, QuestionFilter{AirDate: "2025-11-03", Round: questions.RoundSingle})
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 single-round clues, got %d", total)
	}

	list, total, _ = s.ListQuestions(ctx, QuestionFilter{Search: "A4"})
	if total != 1 || list[0].Question != "q4" {
		t.Fatalf("expected search to match q4, got %+v", list)
	}

	list, total, _ = s.ListQuestions(ctx, QuestionFilter{Limit: 2, Offset: 1})
	if total != 5 || len(list) != 2 {
		t.Fatalf("expected page of 2 from 5, got %d of %d", len(list), total)
	}
}

func TestMemoryStoreFilledDatesAndSummaries(t *testing.T) {
	s := NewMemoryStore()
	seedQuestions(t, s)
	ctx := context.Background()

	dates, err := s.FilledDates(ctx, "2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("filled dates: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2025-11-03" || dates[1] != "2025-11-05" {
		t.Fatalf("unexpected filled dates %v", dates)
	}

	sums, _ := s.DateSummaries(ctx, "2025-11-03", "2025-11-03")
	if len(sums) != 1 || sums[0].QuestionCount != 3 || sums[0].CategoryCount != 2 {
		t.Fatalf("unexpected summary %+v", sums)
	}
}

func TestMemoryStoreDeleteRangeKeepsUndated(t *testing.T) {
	s := NewMemoryStore()
	seedQuestions(t, s)
	ctx := context.Background()

	removed, err := s.DeleteQuestionsInRange(ctx, "2025-11-01", "2025-11-04")
	if err != nil {
		t.Fatalf("delete range: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	if n, _ := s.CountQuestions(ctx); n != 2 {
		t.Fatalf("expected 2 remaining, got %d", n)
	}
}

func TestMemoryStoreQuestionNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if _, err := s.GetQuestion(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteQuestion(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if _, err := s.UpdateQuestion(ctx, questions.QuestionRecord{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	seedQuestions(t, s)
	ctx := context.Background()

	list, _, _ := s.ListQuestions(ctx, QuestionFilter{AirDate: "2025-11-05"})
	list[0].Answer = "mutated"

	got, err := s.GetQuestion(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answer != "a4" {
		t.Fatalf("expected store to remain unchanged, got %s", got.Answer)
	}
}

func TestMemoryStoreCategoriesSortedByCount(t *testing.T) {
	s := NewMemoryStore()
	seedQuestions(t, s)

	cats, _ := s.ListCategories(context.Background())
	if len(cats) != 4 || cats[0].Name != "HISTORY" || cats[0].QuestionCount != 2 {
		t.Fatalf("unexpected categories %+v", cats)
	}
}

func TestMemoryStoreDeleteUserCascades(t *testing.T) {
	s := NewMemoryStore()
	SeedDemo(s, time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	u, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.GamesPlayed == 0 {
		t.Fatalf("expected seeded games for user-1")
	}
	if err := s.DeleteUser(ctx, "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	games, _, _ := s.ListPlayerGames(ctx, playergames.Filter{UserID: "user-1"})
	if len(games) != 0 {
		t.Fatalf("expected games removed with user, got %d", len(games))
	}
	if _, err := s.GetDispute(ctx, "dispute-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected dispute removed with user, got %v", err)
	}
}

func TestMemoryStoreUserCountsExcludeGuests(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	SeedDemo(s, now)
	ctx := context.Background()

	if n, _ := s.CountUsers(ctx); n != 5 {
		t.Fatalf("expected 5 registered users, got %d", n)
	}
	if n, _ := s.CountUsersSince(ctx, now.AddDate(0, 0, -4)); n != 2 {
		t.Fatalf("expected 2 recent users, got %d", n)
	}
	list, total, _ := s.ListUsers(ctx, users.Filter{IncludeGuest: true})
	if total != 6 || len(list) != 6 {
		t.Fatalf("expected guest included, got %d", total)
	}
}

func TestMemoryStoreUpdateUser(t *testing.T) {
	s := NewMemoryStore()
	s.PutUser(users.User{ID: "u", DisplayName: "old", Role: users.RolePlayer})
	name := "new"
	role := users.RoleAdmin

	got, err := s.UpdateUser(context.Background(), "u", users.Update{DisplayName: &name, Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DisplayName != "new" || got.Role != users.RoleAdmin {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestMemoryStoreDisputePaging(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	SeedDemo(s, now)
	ctx := context.Background()

	page, total, err := s.ListDisputes(ctx, disputes.Filter{Status: disputes.StatusPending, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(page) != 1 {
		t.Fatalf("expected last page of 1 from 3, got %d of %d", len(page), total)
	}

	resolved, err := s.ResolveDispute(ctx, "dispute-2", disputes.Resolution{Status: disputes.StatusApproved, Note: "ok"}, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != disputes.StatusApproved || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected resolution %+v", resolved)
	}
	if n, _ := s.CountDisputes(ctx, disputes.StatusPending); n != 2 {
		t.Fatalf("expected 2 pending, got %d", n)
	}
}

func TestMemoryStoreCronRunLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	old := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	e, err := s.StartCronRun(ctx, cronlogs.Entry{JobName: "daily-report", TriggeredBy: cronlogs.TriggerManual, StartedAt: old})
	if err != nil || e.ID == "" || e.Status != cronlogs.StatusRunning {
		t.Fatalf("unexpected start %+v err=%v", e, err)
	}
	running, _ := s.StartCronRun(ctx, cronlogs.Entry{JobName: "prune", StartedAt: old})

	e.Status = cronlogs.StatusSuccess
	if err := s.FinishCronRun(ctx, e); err != nil {
		t.Fatalf("finish: %v", err)
	}

	removed, _ := s.PruneCronRuns(ctx, old.Add(time.Hour))
	if removed != 1 {
		t.Fatalf("expected only the finished run pruned, got %d", removed)
	}
	list, _ := s.ListCronRuns(ctx, "", 0)
	if len(list) != 1 || list[0].ID != running.ID {
		t.Fatalf("expected running entry kept, got %+v", list)
	}
	if err := s.FinishCronRun(ctx, cronlogs.Entry{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreGuestConfigDefault(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	cfg, _ := s.GetGuestConfig(ctx)
	if cfg.MaxGamesPerDay != guests.Default().MaxGamesPerDay {
		t.Fatalf("expected default config, got %+v", cfg)
	}
	cfg.MaxGamesPerDay = 9
	saved, _ := s.SaveGuestConfig(ctx, cfg)
	if saved.UpdatedAt.IsZero() {
		t.Fatalf("expected updatedAt set")
	}
	got, _ := s.GetGuestConfig(ctx)
	if got.MaxGamesPerDay != 9 {
		t.Fatalf("expected saved config, got %+v", got)
	}
}

func TestPageBounds(t *testing.T) {
	off, lim := PageBounds(0, 0, 20, 100)
	if off != 0 || lim != 20 {
		t.Fatalf("expected defaults, got %d/%d", off, lim)
	}
	off, lim = PageBounds(3, 500, 20, 100)
	if off != 200 || lim != 100 {
		t.Fatalf("expected clamp, got %d/%d", off, lim)
	}
}
