package questions

import "testing"

func TestDifficulty(t *testing.T) {
	cases := []struct {
		round Round
		value int
		want  string
	}{
		{RoundSingle, 200, DifficultyEasy},
		{RoundSingle, 400, DifficultyEasy},
		{RoundSingle, 600, DifficultyMedium},
		{RoundSingle, 1000, DifficultyHard},
		{RoundDouble, 800, DifficultyEasy},
		{RoundDouble, 1200, DifficultyMedium},
		{RoundDouble, 2000, DifficultyHard},
		{RoundFinal, 0, DifficultyHard},
		{RoundSingle, 0, DifficultyMedium},
	}
	for _, tc := range cases {
		if got := Difficulty(tc.round, tc.value); got != tc.want {
			t.Fatalf("Difficulty(%s, %d) = %s, want %s", tc.round, tc.value, got, tc.want)
		}
	}
}

func TestKnowledgeCategory(t *testing.T) {
	cases := map[string]string{
		"WORLD CAPITALS":     "Geography",
		"U.S. PRESIDENTS":    "History",
		"SHAKESPEARE":        "Literature",
		"BEFORE & AFTER":     "Language & Words",
		"POTPOURRI":          DefaultKnowledgeCategory,
		"":                   DefaultKnowledgeCategory,
		"THE PERIODIC TABLE": DefaultKnowledgeCategory,
		"CHEMISTRY":          "Science & Nature",
	}
	for in, want := range cases {
		if got := KnowledgeCategory(in); got != want {
			t.Fatalf("KnowledgeCategory(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewFetchedGameBuildsCategories(t *testing.T) {
	clues := []QuestionRecord{
		{Question: "a", Answer: "A", Category: "HISTORY", Round: RoundSingle, Value: 200},
		{Question: "b", Answer: "B", Category: "RIVERS", Round: RoundSingle, Value: 400},
		{Question: "c", Answer: "C", Category: "HISTORY", Round: RoundSingle, Value: 600},
		{Question: "d", Answer: "D", Category: "OPERA", Round: RoundDouble, Value: 800},
		{Question: "e", Answer: "E", Category: "", IsFinalJeopardy: boolPtr(true)},
	}

	game := NewFetchedGame("jarchive-9289", 9289, "2025-11-05", clues)

	if game.QuestionCount != 5 || len(game.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", game.QuestionCount)
	}
	if game.Title != "Show #9289 - November 5, 2025" {
		t.Fatalf("unexpected title %q", game.Title)
	}
	if len(game.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %+v", game.Categories)
	}
	if game.Categories[0].Name != "HISTORY" || len(game.Categories[0].Questions) != 2 {
		t.Fatalf("expected HISTORY first with 2 clues, got %+v", game.Categories[0])
	}
	last := game.Categories[3]
	if last.Round != RoundFinal || last.Name != UnknownCategory {
		t.Fatalf("expected final Unknown category last, got %+v", last)
	}
	for _, q := range game.Questions {
		if q.AirDate != "2025-11-05" || q.GameID != "jarchive-9289" {
			t.Fatalf("expected air date and game id copied, got %+v", q)
		}
		if q.IsFinalJeopardy != nil || q.Difficulty == "" || q.KnowledgeCategory == "" {
			t.Fatalf("expected normalized clue, got %+v", q)
		}
	}
}

func TestGameTitleFallbacks(t *testing.T) {
	if got := gameTitle(0, "2025-01-01"); got != "January 1, 2025" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := gameTitle(12, ""); got != "Show #12" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := gameTitle(0, ""); got != "Untitled game" {
		t.Fatalf("unexpected title %q", got)
	}
}
