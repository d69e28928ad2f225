package providers

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// NotFoundForDate builds the not-found error for an air date with the best
// operator hint available: weekends never have episodes, so point at the
// Friday before.
func NotFoundForDate(date string) *NotFoundError {
	return &NotFoundError{Date: date, Suggestion: suggestionFor(date)}
}

func suggestionFor(date string) string {
	t, err := timeutil.ParseDate(date)
	if err != nil {
		return "use a YYYY-MM-DD air date"
	}
	switch t.Weekday() {
	case time.Saturday:
		return fmt.Sprintf("no episodes air on weekends; try %s", timeutil.FormatDate(t.AddDate(0, 0, -1)))
	case time.Sunday:
		return fmt.Sprintf("no episodes air on weekends; try %s", timeutil.FormatDate(t.AddDate(0, 0, -2)))
	default:
		return fmt.Sprintf("the archive has no game for %s yet; it may have been a rerun or preempted", timeutil.FormatLongDate(date))
	}
}

// IsWeekend reports whether date falls on a Saturday or Sunday.
func IsWeekend(date string) bool {
	t, err := timeutil.ParseDate(date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
