package testutil

import (
	"fmt"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// SampleClues returns n single-round clues spread over two categories.
func SampleClues(n int) []questions.QuestionRecord {
	out := make([]questions.QuestionRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, questions.QuestionRecord{
			Question: fmt.Sprintf("clue %d", i+1),
			Answer:   fmt.Sprintf("answer %d", i+1),
			Category: []string{"HISTORY", "SCIENCE"}[i%2],
			Round:    questions.RoundSingle,
			Value:    200 * (i%5 + 1),
		})
	}
	return out
}

// SampleGame builds a fetched game for date with n clues.
func SampleGame(date string, n int) questions.FetchedGame {
	return questions.NewFetchedGame("game-"+date, 0, date, SampleClues(n))
}
