package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommon(t *testing.T) {
	existing := []slog.Attr{slog.String(FieldRunID, "run-1")}
	cases := []struct {
		name             string
		service, version string
		want             []string
	}{
		{"both", "trivia-admin", "v1", []string{FieldRunID, FieldService, FieldVersion}},
		{"service only", "trivia-admin", "", []string{FieldRunID, FieldService}},
		{"neither", "", "", []string{FieldRunID}},
	}
	for _, tc := range cases {
		attrs := WithCommon(append([]slog.Attr(nil), existing...), tc.service, tc.version)
		if len(attrs) != len(tc.want) {
			t.Fatalf("%s: expected %d attrs, got %+v", tc.name, len(tc.want), attrs)
		}
		for i, key := range tc.want {
			if attrs[i].Key != key {
				t.Fatalf("%s: attr %d = %s, want %s", tc.name, i, attrs[i].Key, key)
			}
		}
	}
}

func TestDomainFieldsRenderInTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "text", Output: &buf})
	Info(logger, "push finished", FieldRunID, "run-7", FieldDate, "2025-01-06", FieldCount, 61)

	out := buf.String()
	for _, want := range []string{"run_id=run-7", "date=2025-01-06", "count=61"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}
