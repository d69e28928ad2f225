package questions

import "sort"

const (
	// UnknownDateKey collects records without an air date.
	UnknownDateKey = "unknown"
	// UnknownCategory names records without a category.
	UnknownCategory = "Unknown"
)

// GroupByDate buckets records by air date, then by round, then by category
// name in first-seen order. It never fails; every record lands in exactly
// one category.
func GroupByDate(records []QuestionRecord) map[string]*GameGroup {
	groups := make(map[string]*GameGroup)
	for _, q := range records {
		date := q.AirDate
		if date == "" {
			date = UnknownDateKey
		}
		group, ok := groups[date]
		if !ok {
			group = &GameGroup{
				AirDate:        date,
				SingleJeopardy: []Category{},
				DoubleJeopardy: []Category{},
				FinalJeopardy:  []Category{},
			}
			groups[date] = group
		}

		round := ResolveRound(q)
		name := q.Category
		if name == "" {
			name = UnknownCategory
		}

		switch round {
		case RoundDouble:
			group.DoubleJeopardy = appendToCategory(group.DoubleJeopardy, name, round, q)
		case RoundFinal:
			group.FinalJeopardy = appendToCategory(group.FinalJeopardy, name, round, q)
		default:
			group.SingleJeopardy = appendToCategory(group.SingleJeopardy, name, round, q)
		}
		group.QuestionCount++
	}
	return groups
}

func appendToCategory(categories []Category, name string, round Round, q QuestionRecord) []Category {
	for i := range categories {
		if categories[i].Name == name {
			categories[i].Questions = append(categories[i].Questions, q)
			return categories
		}
	}
	return append(categories, Category{Name: name, Round: round, Questions: []QuestionRecord{q}})
}

// SortedDates returns the group keys in ascending order with the unknown
// bucket last.
func SortedDates(groups map[string]*GameGroup) []string {
	dates := make([]string, 0, len(groups))
	hasUnknown := false
	for date := range groups {
		if date == UnknownDateKey {
			hasUnknown = true
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if hasUnknown {
		dates = append(dates, UnknownDateKey)
	}
	return dates
}

// Flatten returns the records of a group in board order.
func Flatten(group *GameGroup) []QuestionRecord {
	if group == nil {
		return nil
	}
	out := make([]QuestionRecord, 0, group.QuestionCount)
	for _, r := range Rounds {
		for _, c := range group.Round(r) {
			out = append(out, c.Questions...)
		}
	}
	return out
}
