package fixture

import (
	"context"
	"testing"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
)

func TestFetchGameByDateReturnsFullBoard(t *testing.T) {
	p := New()

	game, err := p.FetchGameByDate(context.Background(), "2025-01-06")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if game.GameID != "fixture-2025-01-06" || game.AirDate != "2025-01-06" {
		t.Fatalf("unexpected game identity %+v", game)
	}
	if game.QuestionCount != 61 {
		t.Fatalf("expected 61 clues, got %d", game.QuestionCount)
	}

	group := questions.GroupByDate(game.Questions)["2025-01-06"]
	if len(group.SingleJeopardy) != 6 || len(group.DoubleJeopardy) != 6 || len(group.FinalJeopardy) != 1 {
		t.Fatalf("unexpected board shape %d/%d/%d", len(group.SingleJeopardy), len(group.DoubleJeopardy), len(group.FinalJeopardy))
	}
}

func TestFetchGameIsDeterministic(t *testing.T) {
	p := New()
	a, _ := p.FetchGameByDate(context.Background(), "2025-02-03")
	b, _ := p.FetchGameByDate(context.Background(), "2025-02-03")
	if a.Questions[0].Question != b.Questions[0].Question || a.Categories[0].Name != b.Categories[0].Name {
		t.Fatal("expected identical games for the same date")
	}
}

func TestFetchGameWeekendNotFound(t *testing.T) {
	_, err := New().FetchGameByDate(context.Background(), "2025-01-04")
	nf, ok := providers.AsNotFoundError(err)
	if !ok || nf.Suggestion == "" {
		t.Fatalf("expected not found with suggestion, got %v", err)
	}
}

func TestFetchGameConfiguredFailure(t *testing.T) {
	p := New("2025-01-02")
	if _, err := p.FetchGameByDate(context.Background(), "2025-01-02"); err == nil {
		t.Fatal("expected configured date to fail")
	}
	if _, err := p.FetchGameByDate(context.Background(), "2025-01-03"); err != nil {
		t.Fatalf("expected other dates to succeed, got %v", err)
	}
}

func TestFetchGameByID(t *testing.T) {
	p := New()
	game, err := p.FetchGameByID(context.Background(), "fixture-2025-01-06")
	if err != nil || game.AirDate != "2025-01-06" {
		t.Fatalf("expected game by id, got %+v (%v)", game, err)
	}
	if _, err := p.FetchGameByID(context.Background(), "9289"); err == nil {
		t.Fatal("expected unknown id to fail")
	}
}
