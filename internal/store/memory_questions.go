package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// InsertQuestions appends records, assigning IDs and timestamps where absent.
func (s *MemoryStore) InsertQuestions(_ context.Context, records []questions.QuestionRecord) (int, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range records {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		s.questions = append(s.questions, q)
	}
	return len(records), nil
}

// ListQuestions returns matching records ordered by air date, then insertion,
// along with the total before paging.
func (s *MemoryStore) ListQuestions(_ context.Context, f QuestionFilter) ([]questions.QuestionRecord, int, error) {
	s.mu.RLock()
	matched := make([]questions.QuestionRecord, 0)
	for _, q := range s.questions {
		if matchQuestion(q, f) {
			matched = append(matched, q)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].AirDate < matched[j].AirDate })
	lo, hi := window(len(matched), f.Offset, f.Limit)
	return matched[lo:hi], len(matched), nil
}

func matchQuestion(q questions.QuestionRecord, f QuestionFilter) bool {
	if f.AirDate != "" && q.AirDate != f.AirDate {
		return false
	}
	if !inRange(q.AirDate, f.Start, f.End) {
		return false
	}
	if f.Round != "" && questions.ResolveRound(q) != f.Round {
		return false
	}
	if f.Category != "" && !strings.EqualFold(q.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		hay := strings.ToLower(q.Question + "\n" + q.Answer + "\n" + q.Category)
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	return true
}

// inRange reports whether date falls within [start, end]; empty bounds are open.
// Undated records only match an unbounded range.
func inRange(date, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	if date == "" {
		return false
	}
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// GetQuestion looks up a record by ID.
func (s *MemoryStore) GetQuestion(_ context.Context, id string) (questions.QuestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return questions.QuestionRecord{}, ErrNotFound
}

// UpdateQuestion replaces the record with q.ID, keeping its creation time.
func (s *MemoryStore) UpdateQuestion(_ context.Context, q questions.QuestionRecord) (questions.QuestionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == q.ID {
			q.CreatedAt = s.questions[i].CreatedAt
			s.questions[i] = q
			return q, nil
		}
	}
	return questions.QuestionRecord{}, ErrNotFound
}

// DeleteQuestion removes one record.
func (s *MemoryStore) DeleteQuestion(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteQuestionsInRange removes every dated record within [start, end].
func (s *MemoryStore) DeleteQuestionsInRange(_ context.Context, start, end string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.questions[:0]
	removed := 0
	for _, q := range s.questions {
		if q.AirDate != "" && inRange(q.AirDate, start, end) {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	s.questions = kept
	return removed, nil
}

// CountQuestions returns the number of stored records.
func (s *MemoryStore) CountQuestions(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

// FilledDates returns the sorted distinct air dates in [start, end] that hold
// at least one record.
func (s *MemoryStore) FilledDates(ctx context.Context, start, end string) ([]string, error) {
	summaries, err := s.DateSummaries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(summaries))
	for _, sum := range summaries {
		dates = append(dates, sum.AirDate)
	}
	return dates, nil
}

// DateSummaries counts records and categories per air date in [start, end].
func (s *MemoryStore) DateSummaries(_ context.Context, start, end string) ([]questions.DateSummary, error) {
	type acc struct {
		count      int
		categories map[string]struct{}
	}
	byDate := make(map[string]*acc)

	s.mu.RLock()
	for _, q := range s.questions {
		if q.AirDate == "" || !inRange(q.AirDate, start, end) {
			continue
		}
		a, ok := byDate[q.AirDate]
		if !ok {
			a = &acc{categories: make(map[string]struct{})}
			byDate[q.AirDate] = a
		}
		a.count++
		a.categories[string(questions.ResolveRound(q))+"|"+q.Category] = struct{}{}
	}
	s.mu.RUnlock()

	out := make([]questions.DateSummary, 0, len(byDate))
	for date, a := range byDate {
		out = append(out, questions.DateSummary{AirDate: date, QuestionCount: a.count, CategoryCount: len(a.categories)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AirDate < out[j].AirDate })
	return out, nil
}

// ListCategories counts records per category name, most populated first.
func (s *MemoryStore) ListCategories(context.Context) ([]CategorySummary, error) {
	counts := make(map[string]int)
	s.mu.RLock()
	for _, q := range s.questions {
		name := q.Category
		if name == "" {
			name = questions.UnknownCategory
		}
		counts[name]++
	}
	s.mu.RUnlock()

	out := make([]CategorySummary, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategorySummary{Name: name, QuestionCount: n})
	}
	sortCategories(out)
	return out, nil
}

func sortCategories(out []CategorySummary) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuestionCount != out[j].QuestionCount {
			return out[i].QuestionCount > out[j].QuestionCount
		}
		return out[i].Name < out[j].Name
	})
}
