package handlers

import (
	"net/http"
	"strings"

	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// Calendar returns the coverage calendar for ?month=YYYY-MM, defaulting to
// the current month.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	month := query(r, "month")
	if month == "" {
		month = h.deps.Content.Today()[:len(timeutil.MonthLayout)]
	}
	year, m, err := timeutil.ParseYearMonth(month)
	if err != nil {
		h.fail(w, r, domain.Invalid("month must be YYYY-MM"))
		return
	}
	view, err := h.deps.Content.Month(r.Context(), year, m)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view, h.logger)
}

type selectDateResponse struct {
	Date   string               `json:"date"`
	Label  string               `json:"label"`
	Action calendar.Action      `json:"action"`
	Group  *questions.GameGroup `json:"group,omitempty"`
}

// SelectDate applies the calendar click rules to a date: future dates do
// nothing, filled dates return their questions, missing dates ask the
// client to open the single-date fetch flow.
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	action, group, err := h.deps.Content.SelectDate(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, selectDateResponse{
		Date:   date,
		Label:  timeutil.FormatLongDate(date),
		Action: action,
		Group:  group,
	}, h.logger)
}

type archiveRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	GameID string `json:"gameId" validate:"required_without=Date"`
}

type archiveFailure struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

// ArchiveGame previews one game from the trivia archive by ?date or ?gameId.
func (h *Handler) ArchiveGame(w http.ResponseWriter, r *http.Request) {
	req := archiveRequest{Date: query(r, "date"), GameID: query(r, "gameId")}
	if err := h.bind.check(&req); err != nil {
		h.fail(w, r, err)
		return
	}
	game, err := h.fetchArchive(r, req)
	if err != nil {
		h.archiveFailed(w, r, req, err)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

// PushArchiveGame fetches one game and stores its questions.
func (h *Handler) PushArchiveGame(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := h.bind.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}
	game, err := h.fetchArchive(r, req)
	if err != nil {
		h.archiveFailed(w, r, req, err)
		return
	}
	n, err := h.deps.Content.PushGame(r.Context(), game)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "archive game pushed",
		logging.FieldGameID, game.GameID, logging.FieldDate, game.AirDate, logging.FieldCount, n)
	writeJSON(w, http.StatusCreated, map[string]any{
		"gameId":    game.GameID,
		"airDate":   game.AirDate,
		"questions": n,
	}, h.logger)
}

func (h *Handler) fetchArchive(r *http.Request, req archiveRequest) (questions.FetchedGame, error) {
	if h.deps.Archive == nil {
		return questions.FetchedGame{}, providers.ErrProviderUnavailable
	}
	if req.GameID != "" {
		return h.deps.Archive.FetchGameByID(r.Context(), strings.TrimSpace(req.GameID))
	}
	if timeutil.IsAfter(req.Date, h.deps.Content.Today()) {
		return questions.FetchedGame{}, domain.Invalid("cannot fetch future date %s", req.Date)
	}
	return h.deps.Archive.FetchGameByDate(r.Context(), req.Date)
}

// archiveFailed reports a failed archive lookup with its suggestion.
// Upstream errors that are not a known kind are reported as 502.
func (h *Handler) archiveFailed(w http.ResponseWriter, r *http.Request, req archiveRequest, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError && r.Context().Err() == nil {
		status, message = http.StatusBadGateway, "trivia archive request failed"
	}
	logging.Warn(loggerFromContext(r, h.logger), "archive fetch failed",
		logging.FieldDate, req.Date, logging.FieldGameID, req.GameID, logging.FieldError, err)
	body := archiveFailure{Error: message, Suggestion: providers.Suggestion(err)}
	body.RequestID = errorBody(r, message)["requestId"]
	writeJSON(w, status, body, h.logger)
}
