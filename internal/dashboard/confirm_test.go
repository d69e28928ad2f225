package dashboard

import (
	"errors"
	"testing"
)

func TestConfirmPhrases(t *testing.T) {
	cases := []struct {
		action ConfirmAction
		target string
		typed  string
		ok     bool
	}{
		{ConfirmDeleteGame, "game-1", "delete game game-1", true},
		{ConfirmDeleteGame, "game-1", "  delete game game-1 ", true},
		{ConfirmDeleteGame, "game-1", "Delete game game-1", false},
		{ConfirmDeleteUser, "user-9", "delete user user-8", false},
		{ConfirmDeleteRange, RangeTarget("2025-01-01", "2025-01-03"), "delete questions 2025-01-01 to 2025-01-03", true},
		{ConfirmDeleteDates, "2", "delete 2 dates", true},
		{ConfirmDeleteDates, "2", "", false},
	}
	for _, tc := range cases {
		err := Confirm(tc.action, tc.target, tc.typed)
		if tc.ok && err != nil {
			t.Fatalf("%s %q: unexpected error %v", tc.action, tc.typed, err)
		}
		if !tc.ok && !errors.Is(err, ErrConfirmationMismatch) {
			t.Fatalf("%s %q: expected mismatch, got %v", tc.action, tc.typed, err)
		}
	}
}
