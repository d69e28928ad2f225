package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/preston-bernstein/trivia-admin-service/internal/dashboard"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/export"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

const (
	defaultQuestionPage = 50
	maxQuestionPage     = 500
)

// ListQuestions returns stored questions matching the query filters.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, size, err := paging(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	offset, limit := store.PageBounds(page, size, defaultQuestionPage, maxQuestionPage)
	result, err := h.deps.Content.Questions(r.Context(), store.QuestionFilter{
		AirDate:  query(r, "airDate"),
		Start:    query(r, "start"),
		End:      query(r, "end"),
		Round:    questions.Round(query(r, "round")),
		Category: query(r, "category"),
		Search:   query(r, "search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

// GetQuestion returns one question.
func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.deps.Content.Question(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q, h.logger)
}

// UpdateQuestion saves an edited question.
func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var q questions.QuestionRecord
	if err := h.bind.decode(w, r, &q, false); err != nil {
		h.fail(w, r, err)
		return
	}
	q.ID = r.PathValue("id")
	saved, err := h.deps.Content.UpdateQuestion(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved, h.logger)
}

// DeleteQuestion removes one question.
func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Content.DeleteQuestion(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteQuestionRange removes every question aired in [start, end] once
// the typed confirmation matches.
func (h *Handler) DeleteQuestionRange(w http.ResponseWriter, r *http.Request) {
	start, end := query(r, "start"), query(r, "end")
	var body confirmBody
	if err := h.bind.decode(w, r, &body, false); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := dashboard.Confirm(dashboard.ConfirmDeleteRange, dashboard.RangeTarget(start, end), body.Confirmation); err != nil {
		h.fail(w, r, err)
		return
	}
	n, err := h.deps.Content.DeleteRange(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "question range deleted",
		"start", start, "end", end, logging.FieldCount, n)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": n, "start": start, "end": end}, h.logger)
}

// Categories lists category names with question counts.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Content.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": list}, h.logger)
}

// GroupedQuestions returns stored questions grouped by air date, round and
// category. A single date may be given as date instead of start and end.
func (h *Handler) GroupedQuestions(w http.ResponseWriter, r *http.Request) {
	if date := query(r, "date"); date != "" {
		group, err := h.deps.Content.GroupedForDate(r.Context(), date)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"date": date, "group": group}, h.logger)
		return
	}
	days, err := h.deps.Content.Grouped(r.Context(), query(r, "start"), query(r, "end"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days}, h.logger)
}

// DateSummaries reports stored question counts per air date.
func (h *Handler) DateSummaries(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.Content.DateSummaries(r.Context(), query(r, "start"), query(r, "end"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": list}, h.logger)
}

// ExportQuestions streams the questions of a date range as a workbook.
func (h *Handler) ExportQuestions(w http.ResponseWriter, r *http.Request) {
	start, end := query(r, "start"), query(r, "end")
	var buf bytes.Buffer
	if err := h.deps.Content.ExportRange(r.Context(), start, end, &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="questions-%s-%s.xlsx"`, start, end))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "export write failed", logging.FieldError, err)
	}
}
