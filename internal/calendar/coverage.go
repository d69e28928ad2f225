package calendar

import (
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// DayStatus classifies one calendar day.
type DayStatus string

const (
	StatusHasData DayStatus = "has-data"
	StatusMissing DayStatus = "missing"
	StatusFuture  DayStatus = "future"
)

// Day is one cell of a month view.
type Day struct {
	Date   string    `json:"date"`
	Label  string    `json:"label"`
	Status DayStatus `json:"status"`
}

// Stats summarizes coverage over a set of days. Future days are excluded
// from both counts.
type Stats struct {
	FilledDates  []string `json:"filledDates"`
	TotalFilled  int      `json:"totalFilled"`
	TotalMissing int      `json:"totalMissing"`
	Coverage     float64  `json:"coverage"`
}

// MonthView is the calendar for one year-month.
type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Today string     `json:"today"`
	Days  []Day      `json:"days"`
	Stats Stats      `json:"stats"`
}

// DateSet is the set of air dates that have stored questions.
type DateSet map[string]struct{}

// NewDateSet builds a DateSet from a list of dates.
func NewDateSet(dates ...string) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// Has reports whether date is filled.
func (s DateSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Classify decides the status of date relative to today. Dates are compared
// as strings, never through a timezone.
func Classify(date, today string, filled DateSet) DayStatus {
	if timeutil.IsAfter(date, today) {
		return StatusFuture
	}
	if filled.Has(date) {
		return StatusHasData
	}
	return StatusMissing
}

// BuildMonth classifies every day of the month and computes its coverage.
func BuildMonth(year int, month time.Month, today string, filled DateSet) MonthView {
	dates := timeutil.DaysInMonth(year, month)
	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		days = append(days, Day{Date: d, Label: timeutil.FormatLongDate(d), Status: Classify(d, today, filled)})
	}
	return MonthView{
		Year:  year,
		Month: month,
		Today: today,
		Days:  days,
		Stats: statsFor(dates, today, filled),
	}
}

// RangeStats computes coverage for an inclusive date range.
func RangeStats(start, end, today string, filled DateSet) (Stats, error) {
	dates, err := timeutil.DatesInRange(start, end)
	if err != nil {
		return Stats{}, err
	}
	return statsFor(dates, today, filled), nil
}

// MissingDates lists the non-future dates in the range without data.
func MissingDates(start, end, today string, filled DateSet) ([]string, error) {
	dates, err := timeutil.DatesInRange(start, end)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, d := range dates {
		if Classify(d, today, filled) == StatusMissing {
			missing = append(missing, d)
		}
	}
	return missing, nil
}

func statsFor(dates []string, today string, filled DateSet) Stats {
	stats := Stats{FilledDates: []string{}}
	for _, d := range dates {
		switch Classify(d, today, filled) {
		case StatusHasData:
			stats.TotalFilled++
			stats.FilledDates = append(stats.FilledDates, d)
		case StatusMissing:
			stats.TotalMissing++
		}
	}
	if total := stats.TotalFilled + stats.TotalMissing; total > 0 {
		stats.Coverage = float64(stats.TotalFilled) / float64(total)
	}
	return stats
}
