package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MonthLayout is the year-month form used by the calendar (YYYY-MM).
const MonthLayout = "2006-01"

var ErrRangeOrder = errors.New("start date must be on or before end date")

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether value is a real calendar date in YYYY-MM-DD form.
func ValidDate(value string) bool {
	if len(value) != len(DateLayout) {
		return false
	}
	_, err := ParseDate(value)
	return err == nil
}

// FormatLongDate renders "2025-11-05" as "November 5, 2025". The string is
// split rather than parsed into a time so no timezone can shift the day.
// Input that is not a date is returned unchanged.
func FormatLongDate(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return value
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return value
	}
	return fmt.Sprintf("%s %d, %d", monthNames[month-1], day, year)
}

// IsAfter compares two YYYY-MM-DD strings lexicographically.
func IsAfter(a, b string) bool {
	return a > b
}

// DatesInRange enumerates every date from start to end inclusive.
func DatesInRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if from.After(to) {
		return nil, ErrRangeOrder
	}

	days := int(to.Sub(from).Hours()/24) + 1
	out := make([]string, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out, nil
}

// ParseYearMonth parses "2025-11" into its parts.
func ParseYearMonth(value string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return t.Year(), t.Month(), nil
}

// DaysInMonth lists every date of the given month.
func DaysInMonth(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	out := make([]string, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// Today returns the calendar date of now in loc. This is the only place wall
// clock time becomes a date string; everything downstream compares strings.
func Today(now func() time.Time, loc *time.Location) string {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now().In(loc))
}

// LoadLocation resolves name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
