package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/trivia-admin-service/internal/metrics"
	"github.com/preston-bernstein/trivia-admin-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected request id from header, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/users/user-1", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, rec, next), req)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	out := buf.String()
	if !strings.Contains(out, "request_id=abc-123") || !strings.Contains(out, "status_code=418") {
		t.Fatalf("expected request log line, got %s", out)
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenInvalid(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" || got == "bad id" {
			t.Fatalf("expected generated request id, got %q", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "bad id")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized X-Request-ID header, got %q", got)
	}
}

func TestRecoverReturns500(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rr := testutil.Serve(LoggingMiddleware(logger, nil, Recover(logger, panicky)), http.MethodGet, "/admin/overview", nil)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if !strings.Contains(rr.Body.String(), `"error":"internal error"`) {
		t.Fatalf("expected JSON error body, got %s", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "handler panic") {
		t.Fatalf("expected panic logged, got %s", buf.String())
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %q", got)
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rr, status: http.StatusOK}
	ww.WriteHeader(http.StatusCreated)
	ww.WriteHeader(http.StatusInternalServerError)
	if ww.status != http.StatusCreated {
		t.Fatalf("expected first status kept, got %d", ww.status)
	}
}

type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestResponseWriterHijack(t *testing.T) {
	inner := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}
	ww := &responseWriter{ResponseWriter: inner, status: http.StatusOK}
	if _, _, err := ww.Hijack(); err != nil || !inner.hijacked {
		t.Fatalf("expected hijack delegated, err=%v", err)
	}
	if ww.status != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101 recorded, got %d", ww.status)
	}

	plain := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := plain.Hijack(); err == nil {
		t.Fatal("expected error when hijacking is unsupported")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/health", want: "/health"},
		{in: "/admin/questions", want: "/admin/questions"},
		{in: "/admin/questions/q-9", want: "/admin/questions/:id"},
		{in: "/admin/questions/grouped", want: "/admin/questions/grouped"},
		{in: "/admin/users/email", want: "/admin/users/email"},
		{in: "/admin/users/user-1/email", want: "/admin/users/:id/email"},
		{in: "/admin/calendar/2025-01-02/select", want: "/admin/calendar/:id/select"},
		{in: "/admin/ingest/runs", want: "/admin/ingest/runs"},
		{in: "/admin/ingest/runs/3f2a/stream", want: "/admin/ingest/runs/:id/stream"},
		{in: "/admin/dashboard/sessions/s-1/events", want: "/admin/dashboard/sessions/:id/events"},
	}
	for _, tc := range tests {
		if got := normalizePath(tc.in); got != tc.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
