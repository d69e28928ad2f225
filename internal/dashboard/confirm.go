package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfirmationMismatch blocks a destructive action whose typed phrase
// does not match.
var ErrConfirmationMismatch = errors.New("confirmation phrase does not match")

// ConfirmAction names a destructive action.
type ConfirmAction string

const (
	ConfirmDeleteGame  ConfirmAction = "delete-game"
	ConfirmDeleteUser  ConfirmAction = "delete-user"
	ConfirmDeleteRange ConfirmAction = "delete-range"
	ConfirmDeleteDates ConfirmAction = "delete-dates"
)

// RequiredPhrase is the text an operator must type to run action on target.
func RequiredPhrase(action ConfirmAction, target string) string {
	switch action {
	case ConfirmDeleteGame:
		return "delete game " + target
	case ConfirmDeleteUser:
		return "delete user " + target
	case ConfirmDeleteRange:
		return "delete questions " + target
	case ConfirmDeleteDates:
		return "delete " + target + " dates"
	default:
		return "confirm " + target
	}
}

// RangeTarget is the confirmation target for a date range.
func RangeTarget(start, end string) string {
	return start + " to " + end
}

// Confirm checks typed against the required phrase. Surrounding whitespace is
// ignored; case is not.
func Confirm(action ConfirmAction, target, typed string) error {
	want := RequiredPhrase(action, target)
	if strings.TrimSpace(typed) != want {
		return fmt.Errorf("%w: type %q to confirm", ErrConfirmationMismatch, want)
	}
	return nil
}
