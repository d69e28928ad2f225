package questions

import "testing"

func boolPtr(v bool) *bool { return &v }

func TestResolveRoundPrefersExplicitRound(t *testing.T) {
	q := QuestionRecord{Round: RoundSingle, IsFinalJeopardy: boolPtr(true)}
	if got := ResolveRound(q); got != RoundSingle {
		t.Fatalf("expected explicit round to win, got %s", got)
	}
}

func TestResolveRoundLegacyFlags(t *testing.T) {
	cases := []struct {
		name string
		q    QuestionRecord
		want Round
	}{
		{"double flag", QuestionRecord{IsDoubleJeopardy: boolPtr(true)}, RoundDouble},
		{"final flag", QuestionRecord{IsFinalJeopardy: boolPtr(true)}, RoundFinal},
		{"final beats double", QuestionRecord{IsDoubleJeopardy: boolPtr(true), IsFinalJeopardy: boolPtr(true)}, RoundFinal},
		{"false flags", QuestionRecord{IsDoubleJeopardy: boolPtr(false), IsFinalJeopardy: boolPtr(false)}, RoundSingle},
		{"nothing set", QuestionRecord{}, RoundSingle},
		{"unknown round string", QuestionRecord{Round: "triple", IsDoubleJeopardy: boolPtr(true)}, RoundDouble},
	}
	for _, tc := range cases {
		if got := ResolveRound(tc.q); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestGroupByDateKeepsEveryRecord(t *testing.T) {
	records := []QuestionRecord{
		{Question: "q1", AirDate: "2025-01-01", Category: "HISTORY", Round: RoundSingle},
		{Question: "q2", AirDate: "2025-01-01", Category: "HISTORY", Round: RoundSingle},
		{Question: "q3", AirDate: "2025-01-01", Category: "SCIENCE", IsDoubleJeopardy: boolPtr(true)},
		{Question: "q4", AirDate: "2025-01-01", Category: "FINAL", IsFinalJeopardy: boolPtr(true)},
		{Question: "q5", AirDate: "2025-01-02", Category: ""},
		{Question: "q6", Category: "NO DATE"},
		{Question: "q7", Category: "NO DATE", Round: RoundDouble},
	}

	groups := GroupByDate(records)

	total := 0
	for _, g := range groups {
		for _, r := range Rounds {
			for _, c := range g.Round(r) {
				total += len(c.Questions)
			}
		}
	}
	if total != len(records) {
		t.Fatalf("expected %d grouped records, got %d", len(records), total)
	}

	first := groups["2025-01-01"]
	if first == nil || first.QuestionCount != 4 {
		t.Fatalf("expected 4 questions on 2025-01-01, got %+v", first)
	}
	if len(first.SingleJeopardy) != 1 || len(first.SingleJeopardy[0].Questions) != 2 {
		t.Fatalf("expected HISTORY to hold 2 clues, got %+v", first.SingleJeopardy)
	}
	if len(first.DoubleJeopardy) != 1 || len(first.FinalJeopardy) != 1 {
		t.Fatalf("expected legacy flags to route clues, got %+v", first)
	}

	second := groups["2025-01-02"]
	if second.SingleJeopardy[0].Name != UnknownCategory {
		t.Fatalf("expected Unknown category, got %s", second.SingleJeopardy[0].Name)
	}

	unknown := groups[UnknownDateKey]
	if unknown == nil || unknown.QuestionCount != 2 {
		t.Fatalf("expected shared unknown bucket with 2 records, got %+v", unknown)
	}
}

func TestGroupByDateRoundConsistency(t *testing.T) {
	records := []QuestionRecord{
		{AirDate: "2025-02-03", Category: "WORDS", Round: RoundSingle},
		{AirDate: "2025-02-03", Category: "WORDS", Round: RoundDouble},
		{AirDate: "2025-02-03", Category: "WORDS", IsFinalJeopardy: boolPtr(true)},
	}
	group := GroupByDate(records)["2025-02-03"]
	for _, r := range Rounds {
		cats := group.Round(r)
		if len(cats) != 1 {
			t.Fatalf("expected WORDS once in %s, got %d", r, len(cats))
		}
		for _, q := range cats[0].Questions {
			if ResolveRound(q) != r || cats[0].Round != r {
				t.Fatalf("clue in %s bucket resolves to %s", r, ResolveRound(q))
			}
		}
	}
}

func TestGroupByDatePreservesCategoryOrder(t *testing.T) {
	records := []QuestionRecord{
		{AirDate: "2025-03-03", Category: "B"},
		{AirDate: "2025-03-03", Category: "A"},
		{AirDate: "2025-03-03", Category: "B"},
	}
	cats := GroupByDate(records)["2025-03-03"].SingleJeopardy
	if len(cats) != 2 || cats[0].Name != "B" || cats[1].Name != "A" {
		t.Fatalf("expected first-seen order B, A; got %+v", cats)
	}
}

func TestGroupByDateEmptyInput(t *testing.T) {
	if groups := GroupByDate(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestSortedDatesPutsUnknownLast(t *testing.T) {
	groups := GroupByDate([]QuestionRecord{
		{AirDate: "2025-01-02"}, {}, {AirDate: "2024-12-31"},
	})
	dates := SortedDates(groups)
	want := []string{"2024-12-31", "2025-01-02", UnknownDateKey}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}

func TestFlattenReturnsBoardOrder(t *testing.T) {
	group := GroupByDate([]QuestionRecord{
		{Question: "final", AirDate: "d", Round: RoundFinal},
		{Question: "single", AirDate: "d", Round: RoundSingle},
		{Question: "double", AirDate: "d", Round: RoundDouble},
	})["d"]
	flat := Flatten(group)
	if len(flat) != 3 || flat[0].Question != "single" || flat[2].Question != "final" {
		t.Fatalf("unexpected flatten order %+v", flat)
	}
	if Flatten(nil) != nil {
		t.Fatal("expected nil for nil group")
	}
}
