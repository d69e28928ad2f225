package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/ingest"
	"github.com/preston-bernstein/trivia-admin-service/internal/jobs"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
	"github.com/preston-bernstein/trivia-admin-service/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.Invalid("bad date"), http.StatusBadRequest},
		{"confirmation", fmt.Errorf("%w: type it", dashboard.ErrConfirmationMismatch), http.StatusBadRequest},
		{"unknown candidate", ingest.ErrUnknownCandidate, http.StatusBadRequest},
		{"not found", fmt.Errorf("user x: %w", store.ErrNotFound), http.StatusNotFound},
		{"run", ingest.ErrRunNotFound, http.StatusNotFound},
		{"session", dashboard.ErrSessionNotFound, http.StatusNotFound},
		{"job", jobs.ErrUnknownJob, http.StatusNotFound},
		{"conflict", domain.Conflict("date filled"), http.StatusConflict},
		{"busy", ingest.ErrBusy, http.StatusConflict},
		{"archive miss", providers.NotFoundForDate("2025-01-04"), http.StatusNotFound},
		{"rate limited", &providers.RateLimitError{}, http.StatusBadGateway},
		{"unavailable", providers.ErrProviderUnavailable, http.StatusBadGateway},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got, _ := classify(tc.err); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
	if _, msg := classify(errors.New("secret dsn")); msg != "internal error" {
		t.Fatalf("expected internal details hidden, got %q", msg)
	}
}

func TestFailLogsServerErrorsOnly(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewHandler(Deps{Logger: logger})

	rr := call(func(w http.ResponseWriter, r *http.Request) { h.fail(w, r, domain.Invalid("nope")) }, http.MethodGet, "/", "")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if buf.Len() != 0 {
		t.Fatalf("expected validation failure not logged, got %s", buf.String())
	}

	rr = call(func(w http.ResponseWriter, r *http.Request) { h.fail(w, r, errors.New("boom")) }, http.MethodGet, "/", "")
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if !bytes.Contains(buf.Bytes(), []byte("request failed")) {
		t.Fatalf("expected server error logged, got %s", buf.String())
	}
}
