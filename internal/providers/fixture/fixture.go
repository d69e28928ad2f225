package fixture

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

const idPrefix = "fixture-"

var categoryPool = []string{
	"WORLD CAPITALS", "U.S. PRESIDENTS", "SHAKESPEARE", "BEFORE & AFTER", "POTPOURRI", "CHEMISTRY",
	"OPERA", "RIVERS", "OLYMPIC SPORTS", "WORD ORIGINS", "ANCIENT HISTORY", "FOOD & DRINK",
	"BROADWAY", "MYTHOLOGY",
}

// Provider returns deterministic games for every weekday, useful for local
// development and tests.
type Provider struct {
	failDates map[string]struct{}
}

// New creates a fixture provider. Dates in failDates always return an error.
func New(failDates ...string) *Provider {
	fail := make(map[string]struct{}, len(failDates))
	for _, d := range failDates {
		fail[d] = struct{}{}
	}
	return &Provider{failDates: fail}
}

// FetchGameByDate returns a full board for weekday dates.
func (p *Provider) FetchGameByDate(ctx context.Context, date string) (questions.FetchedGame, error) {
	if err := ctx.Err(); err != nil {
		return questions.FetchedGame{}, err
	}
	if !timeutil.ValidDate(date) {
		return questions.FetchedGame{}, fmt.Errorf("invalid air date %q", date)
	}
	if _, fail := p.failDates[date]; fail {
		return questions.FetchedGame{}, fmt.Errorf("fixture failure for %s", date)
	}
	if providers.IsWeekend(date) {
		return questions.FetchedGame{}, providers.NotFoundForDate(date)
	}
	return buildGame(date), nil
}

// FetchGameByID accepts ids of the form fixture-YYYY-MM-DD.
func (p *Provider) FetchGameByID(ctx context.Context, gameID string) (questions.FetchedGame, error) {
	date, ok := strings.CutPrefix(gameID, idPrefix)
	if !ok || !timeutil.ValidDate(date) {
		return questions.FetchedGame{}, &providers.NotFoundError{GameID: gameID, Suggestion: "fixture ids look like fixture-2025-01-06"}
	}
	return p.FetchGameByDate(ctx, date)
}

func buildGame(date string) questions.FetchedGame {
	t, _ := timeutil.ParseDate(date)
	offset := t.YearDay() % len(categoryPool)

	var clues []questions.QuestionRecord
	for col := 0; col < 6; col++ {
		cat := categoryPool[(offset+col)%len(categoryPool)]
		clues = append(clues, boardColumn(date, cat, questions.RoundSingle, 200)...)
	}
	for col := 0; col < 6; col++ {
		cat := categoryPool[(offset+col+6)%len(categoryPool)]
		clues = append(clues, boardColumn(date, cat, questions.RoundDouble, 400)...)
	}
	final := categoryPool[(offset+12)%len(categoryPool)]
	clues = append(clues, questions.QuestionRecord{
		Question: fmt.Sprintf("Final clue about %s for %s", strings.ToLower(final), date),
		Answer:   "Final answer",
		Category: final,
		Round:    questions.RoundFinal,
	})

	return questions.NewFetchedGame(idPrefix+date, 0, date, clues)
}

func boardColumn(date, category string, round questions.Round, base int) []questions.QuestionRecord {
	out := make([]questions.QuestionRecord, 0, 5)
	for row := 1; row <= 5; row++ {
		value := base * row
		out = append(out, questions.QuestionRecord{
			Question:         fmt.Sprintf("%s clue for $%d on %s", category, value, date),
			Answer:           fmt.Sprintf("Answer %s %d", strings.ToLower(category), row),
			Value:            value,
			Category:         category,
			Round:            round,
			WasTripleStumper: row == 5,
		})
	}
	return out
}
