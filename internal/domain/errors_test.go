package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsValidationThroughWrap(t *testing.T) {
	err := fmt.Errorf("push: %w", Invalid("date %s is in the future", "2030-01-01"))
	v, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error")
	}
	if v.Message != "date 2030-01-01 is in the future" {
		t.Fatalf("unexpected message %q", v.Message)
	}
}

func TestConflictWrapsSentinel(t *testing.T) {
	err := Conflict("date %s already has questions", "2025-11-05")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict")
	}
	if _, ok := AsValidation(err); ok {
		t.Fatalf("conflict must not be a validation error")
	}
}
