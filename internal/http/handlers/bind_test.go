package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
)

type bindTarget struct {
	Subject string `json:"subject" validate:"required,max=5"`
	Count   int    `json:"count" validate:"min=0"`
}

func decodeBody(t *testing.T, body string, optional bool) (bindTarget, error) {
	t.Helper()
	b := newBinder(nil)
	var dst bindTarget
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return dst, b.decode(httptest.NewRecorder(), req, &dst, optional)
}

func TestBinderDecode(t *testing.T) {
	dst, err := decodeBody(t, `{"subject":"hi","count":2}`, false)
	if err != nil || dst.Subject != "hi" || dst.Count != 2 {
		t.Fatalf("unexpected decode %+v err=%v", dst, err)
	}
}

func TestBinderRejects(t *testing.T) {
	cases := map[string]string{
		`{"subject":"hi","extra":1}`: "unknown field",
		`{"subject":`:                "invalid JSON",
		``:                           "request body is required",
		`{"subject":"toolong"}`:      "subject",
		`{"count":-1,"subject":"a"}`: "count",
	}
	for body, want := range cases {
		_, err := decodeBody(t, body, false)
		v, ok := domain.AsValidation(err)
		if !ok {
			t.Fatalf("%q: expected validation error, got %v", body, err)
		}
		if !strings.Contains(v.Message, want) {
			t.Fatalf("%q: expected %q in %q", body, want, v.Message)
		}
	}
}

func TestBinderOptionalEmptyBodyStillValidates(t *testing.T) {
	if _, err := decodeBody(t, ``, true); err == nil {
		t.Fatalf("expected required subject to fail on empty optional body")
	}
}

func TestBinderBodyTooLarge(t *testing.T) {
	body := `{"subject":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	_, err := decodeBody(t, body, false)
	if v, ok := domain.AsValidation(err); !ok || v.Message != "request body too large" {
		t.Fatalf("expected too large error, got %v", err)
	}
}
