package questions

import (
	"fmt"

	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// NewFetchedGame assembles a game from its flat clue list. Categories keep
// board order; air date and game id are copied onto every clue.
func NewFetchedGame(gameID string, showNumber int, airDate string, clues []QuestionRecord) FetchedGame {
	records := make([]QuestionRecord, 0, len(clues))
	for _, q := range clues {
		q = Normalize(q)
		q.AirDate = airDate
		q.GameID = gameID
		if q.Category == "" {
			q.Category = UnknownCategory
		}
		if q.Difficulty == "" {
			q.Difficulty = Difficulty(q.Round, q.Value)
		}
		if q.KnowledgeCategory == "" {
			q.KnowledgeCategory = KnowledgeCategory(q.Category)
		}
		records = append(records, q)
	}

	var categories []Category
	for _, round := range Rounds {
		var inRound []Category
		for _, q := range records {
			if q.Round == round {
				inRound = appendToCategory(inRound, q.Category, round, q)
			}
		}
		categories = append(categories, inRound...)
	}

	return FetchedGame{
		GameID:        gameID,
		ShowNumber:    showNumber,
		AirDate:       airDate,
		Title:         gameTitle(showNumber, airDate),
		QuestionCount: len(records),
		Categories:    categories,
		Questions:     records,
	}
}

func gameTitle(showNumber int, airDate string) string {
	switch {
	case showNumber > 0 && airDate != "":
		return fmt.Sprintf("Show #%d - %s", showNumber, timeutil.FormatLongDate(airDate))
	case airDate != "":
		return timeutil.FormatLongDate(airDate)
	case showNumber > 0:
		return fmt.Sprintf("Show #%d", showNumber)
	default:
		return "Untitled game"
	}
}
