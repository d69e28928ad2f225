package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when no upstream is configured.
var ErrProviderUnavailable = errors.New("archive provider unavailable")

// NotFoundError reports that the archive has no game for a date or id.
// Suggestion, when set, is a human-readable hint for the operator.
type NotFoundError struct {
	Date       string
	GameID     string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Date != "":
		return fmt.Sprintf("no game found for %s", e.Date)
	case e.GameID != "":
		return fmt.Sprintf("no game found with id %s", e.GameID)
	default:
		return "game not found"
	}
}

// AsNotFoundError attempts to unwrap an error into a NotFoundError.
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// Suggestion returns the operator hint carried by err, if any.
func Suggestion(err error) string {
	if nf, ok := AsNotFoundError(err); ok {
		return nf.Suggestion
	}
	return ""
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
