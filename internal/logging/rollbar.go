package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/rollbar/rollbar-go"
)

// RollbarConfig enables forwarding of error records to Rollbar.
type RollbarConfig struct {
	Token       string
	Environment string
}

// errorReporter is the subset of the rollbar client the handler needs.
type errorReporter interface {
	ErrorWithExtras(level string, err error, extras map[string]interface{})
	MessageWithExtras(level string, msg string, extras map[string]interface{})
}

// RollbarHandler wraps another handler and reports error-level records.
type RollbarHandler struct {
	next     slog.Handler
	reporter errorReporter
	attrs    []slog.Attr
}

func newRollbarClient(cfg RollbarConfig, version string) *rollbar.Client {
	env := cfg.Environment
	if env == "" {
		env = "development"
	}
	host, _ := os.Hostname()
	return rollbar.New(cfg.Token, env, version, host, "")
}

// NewRollbarHandler returns a handler that delegates every record to next and
// additionally reports records at error level or above.
func NewRollbarHandler(next slog.Handler, reporter errorReporter) *RollbarHandler {
	return &RollbarHandler{next: next, reporter: reporter}
}

func (h *RollbarHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RollbarHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelError && h.reporter != nil {
		extras := make(map[string]interface{}, len(h.attrs)+record.NumAttrs())
		for _, attr := range h.attrs {
			extras[attr.Key] = attr.Value.Any()
		}
		var reported error
		record.Attrs(func(attr slog.Attr) bool {
			if err, ok := attr.Value.Any().(error); ok && attr.Key == "error" {
				reported = err
				return true
			}
			extras[attr.Key] = attr.Value.Any()
			return true
		})
		extras["message"] = record.Message
		if reported != nil {
			h.reporter.ErrorWithExtras(rollbar.ERR, reported, extras)
		} else {
			h.reporter.MessageWithExtras(rollbar.ERR, record.Message, extras)
		}
	}
	return h.next.Handle(ctx, record)
}

func (h *RollbarHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &RollbarHandler{next: h.next.WithAttrs(attrs), reporter: h.reporter, attrs: merged}
}

func (h *RollbarHandler) WithGroup(name string) slog.Handler {
	return &RollbarHandler{next: h.next.WithGroup(name), reporter: h.reporter, attrs: h.attrs}
}

// CloseReporter flushes pending Rollbar items when the logger was built with a token.
func CloseReporter(logger *slog.Logger) error {
	if logger == nil {
		return nil
	}
	h, ok := logger.Handler().(*RollbarHandler)
	if !ok {
		return nil
	}
	if client, ok := h.reporter.(*rollbar.Client); ok {
		return client.Close()
	}
	return nil
}
