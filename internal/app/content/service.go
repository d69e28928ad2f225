// Package content manages stored questions and the calendar built from them.
package content

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/export"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// Store is the slice of storage the content service needs.
type Store interface {
	InsertQuestions(ctx context.Context, records []questions.QuestionRecord) (int, error)
	ListQuestions(ctx context.Context, f store.QuestionFilter) ([]questions.QuestionRecord, int, error)
	GetQuestion(ctx context.Context, id string) (questions.QuestionRecord, error)
	UpdateQuestion(ctx context.Context, q questions.QuestionRecord) (questions.QuestionRecord, error)
	DeleteQuestion(ctx context.Context, id string) error
	DeleteQuestionsInRange(ctx context.Context, start, end string) (int, error)
	FilledDates(ctx context.Context, start, end string) ([]string, error)
	DateSummaries(ctx context.Context, start, end string) ([]questions.DateSummary, error)
	ListCategories(ctx context.Context) ([]store.CategorySummary, error)
}

// Page is one page of questions.
type Page struct {
	Questions []questions.QuestionRecord `json:"questions"`
	Total     int                        `json:"total"`
}

// GroupedDay pairs a date with its grouped board.
type GroupedDay struct {
	AirDate   string               `json:"airDate"`
	LongLabel string               `json:"label"`
	Group     *questions.GameGroup `json:"group"`
}

// Service coordinates question storage.
type Service struct {
	store Store
	today func() string
}

// NewService constructs a Service. today returns the current calendar date
// as YYYY-MM-DD.
func NewService(store Store, today func() string) *Service {
	return &Service{store: store, today: today}
}

// Today exposes the service's notion of the current date.
func (s *Service) Today() string {
	return s.today()
}

// Questions lists stored questions.
func (s *Service) Questions(ctx context.Context, f store.QuestionFilter) (Page, error) {
	if f.AirDate != "" && !timeutil.ValidDate(f.AirDate) {
		return Page{}, domain.Invalid("invalid air date %q", f.AirDate)
	}
	if f.Round != "" && !f.Round.Valid() {
		return Page{}, domain.Invalid("invalid round %q", f.Round)
	}
	list, total, err := s.store.ListQuestions(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Page{Questions: list, Total: total}, nil
}

// Question returns one question.
func (s *Service) Question(ctx context.Context, id string) (questions.QuestionRecord, error) {
	return s.store.GetQuestion(ctx, id)
}

// UpdateQuestion saves edits, re-deriving difficulty when the value or round
// changes and normalising legacy round flags.
func (s *Service) UpdateQuestion(ctx context.Context, q questions.QuestionRecord) (questions.QuestionRecord, error) {
	if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
		return questions.QuestionRecord{}, domain.Invalid("question and answer are required")
	}
	if q.AirDate != "" && !timeutil.ValidDate(q.AirDate) {
		return questions.QuestionRecord{}, domain.Invalid("invalid air date %q", q.AirDate)
	}
	current, err := s.store.GetQuestion(ctx, q.ID)
	if err != nil {
		return questions.QuestionRecord{}, err
	}
	q = questions.Normalize(q)
	if q.Value != current.Value || q.Round != questions.ResolveRound(current) || q.Difficulty == "" {
		q.Difficulty = questions.Difficulty(q.Round, q.Value)
	}
	if q.KnowledgeCategory == "" {
		q.KnowledgeCategory = questions.KnowledgeCategory(q.Category)
	}
	return s.store.UpdateQuestion(ctx, q)
}

// DeleteQuestion removes one question.
func (s *Service) DeleteQuestion(ctx context.Context, id string) error {
	return s.store.DeleteQuestion(ctx, id)
}

// Categories lists category names with counts.
func (s *Service) Categories(ctx context.Context) ([]store.CategorySummary, error) {
	return s.store.ListCategories(ctx)
}

// GroupedForDate groups the stored questions of one air date. A date without
// questions yields a nil group.
func (s *Service) GroupedForDate(ctx context.Context, date string) (*questions.GameGroup, error) {
	if !timeutil.ValidDate(date) {
		return nil, domain.Invalid("invalid date %q", date)
	}
	list, _, err := s.store.ListQuestions(ctx, store.QuestionFilter{AirDate: date})
	if err != nil {
		return nil, err
	}
	return questions.GroupByDate(list)[date], nil
}

// Grouped groups every stored question in [start, end], ordered by date.
func (s *Service) Grouped(ctx context.Context, start, end string) ([]GroupedDay, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	list, _, err := s.store.ListQuestions(ctx, store.QuestionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	groups := questions.GroupByDate(list)
	out := make([]GroupedDay, 0, len(groups))
	for _, date := range questions.SortedDates(groups) {
		out = append(out, GroupedDay{AirDate: date, LongLabel: timeutil.FormatLongDate(date), Group: groups[date]})
	}
	return out, nil
}

// Month builds the coverage calendar for a year-month.
func (s *Service) Month(ctx context.Context, year int, month time.Month) (calendar.MonthView, error) {
	days := timeutil.DaysInMonth(year, month)
	if len(days) == 0 {
		return calendar.MonthView{}, domain.Invalid("invalid month %d-%02d", year, int(month))
	}
	filled, err := s.store.FilledDates(ctx, days[0], days[len(days)-1])
	if err != nil {
		return calendar.MonthView{}, err
	}
	return calendar.BuildMonth(year, month, s.today(), calendar.NewDateSet(filled...)), nil
}

// FilledSet returns the filled dates in [start, end] as a set.
func (s *Service) FilledSet(ctx context.Context, start, end string) (calendar.DateSet, error) {
	filled, err := s.store.FilledDates(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return calendar.NewDateSet(filled...), nil
}

// SelectDate decides what a click on date should do and, for filled dates,
// loads the grouped questions. Future dates never reach storage.
func (s *Service) SelectDate(ctx context.Context, date string) (calendar.Action, *questions.GameGroup, error) {
	if !timeutil.ValidDate(date) {
		return calendar.ActionNone, nil, domain.Invalid("invalid date %q", date)
	}
	if timeutil.IsAfter(date, s.today()) {
		return calendar.ActionNone, nil, nil
	}
	filled, err := s.FilledSet(ctx, date, date)
	if err != nil {
		return calendar.ActionNone, nil, err
	}
	action := calendar.Decide(date, s.today(), filled)
	if action != calendar.ActionLoadDate {
		return action, nil, nil
	}
	group, err := s.GroupedForDate(ctx, date)
	return action, group, err
}

// PushGame stores every question of a fetched game. Future air dates, dates
// that already hold questions, and games without questions are rejected.
func (s *Service) PushGame(ctx context.Context, game questions.FetchedGame) (int, error) {
	if len(game.Questions) == 0 {
		return 0, domain.Invalid("game %s has no questions", game.GameID)
	}
	if game.AirDate != "" {
		if !timeutil.ValidDate(game.AirDate) {
			return 0, domain.Invalid("invalid air date %q", game.AirDate)
		}
		if timeutil.IsAfter(game.AirDate, s.today()) {
			return 0, domain.Invalid("cannot push future date %s", game.AirDate)
		}
		filled, err := s.store.FilledDates(ctx, game.AirDate, game.AirDate)
		if err != nil {
			return 0, err
		}
		if len(filled) > 0 {
			return 0, domain.Conflict("date %s already has questions", game.AirDate)
		}
	}

	records := make([]questions.QuestionRecord, 0, len(game.Questions))
	for _, q := range game.Questions {
		q = questions.Normalize(q)
		q.ID = ""
		if q.AirDate == "" {
			q.AirDate = game.AirDate
		}
		if q.GameID == "" {
			q.GameID = game.GameID
		}
		records = append(records, q)
	}
	n, err := s.store.InsertQuestions(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("push game %s: %w", game.GameID, err)
	}
	return n, nil
}

// DateSummaries reports what storage holds per date in [start, end].
func (s *Service) DateSummaries(ctx context.Context, start, end string) ([]questions.DateSummary, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.store.DateSummaries(ctx, start, end)
}

// DeleteRange removes every question aired within [start, end].
func (s *Service) DeleteRange(ctx context.Context, start, end string) (int, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	return s.store.DeleteQuestionsInRange(ctx, start, end)
}

// ExportRange writes the questions in [start, end] as an xlsx workbook.
func (s *Service) ExportRange(ctx context.Context, start, end string, w io.Writer) error {
	if err := validateRange(start, end); err != nil {
		return err
	}
	list, _, err := s.store.ListQuestions(ctx, store.QuestionFilter{Start: start, End: end})
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Questions %s to %s", timeutil.FormatLongDate(start), timeutil.FormatLongDate(end))
	return export.WriteQuestions(w, list, title)
}

func validateRange(start, end string) error {
	if start == "" || end == "" {
		return domain.Invalid("start and end dates are required")
	}
	if !timeutil.ValidDate(start) || !timeutil.ValidDate(end) {
		return domain.Invalid("dates must be YYYY-MM-DD")
	}
	if timeutil.IsAfter(start, end) {
		return domain.Invalid("Start date must be before end date")
	}
	return nil
}
