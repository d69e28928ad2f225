package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

// resolvedRound mirrors questions.ResolveRound for legacy rows.
const resolvedRound = `CASE WHEN round IN ('single','double','final') THEN round
	WHEN is_final_jeopardy THEN 'final'
	WHEN is_double_jeopardy THEN 'double'
	ELSE 'single' END`

const questionColumns = `id, question, answer, value, category, COALESCE(round, ''),
	knowledge_category, difficulty, was_triple_stumper,
	COALESCE(to_char(air_date, 'YYYY-MM-DD'), ''), game_id,
	is_double_jeopardy, is_final_jeopardy, created_at`

func scanQuestion(row pgx.Row) (questions.QuestionRecord, error) {
	var q questions.QuestionRecord
	var round string
	err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Value, &q.Category, &round,
		&q.KnowledgeCategory, &q.Difficulty, &q.WasTripleStumper,
		&q.AirDate, &q.GameID, &q.IsDoubleJeopardy, &q.IsFinalJeopardy, &q.CreatedAt)
	q.Round = questions.Round(round)
	return q, err
}

// InsertQuestions writes records in one transaction.
func (s *Store) InsertQuestions(ctx context.Context, records []questions.QuestionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, q := range records {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		batch.Queue(`INSERT INTO questions (id, question, answer, value, category, round,
			knowledge_category, difficulty, was_triple_stumper, air_date, game_id,
			is_double_jeopardy, is_final_jeopardy, created_at)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, '')::date, $11, $12, $13, $14)`,
			q.ID, q.Question, q.Answer, q.Value, q.Category, string(q.Round),
			q.KnowledgeCategory, q.Difficulty, q.WasTripleStumper, q.AirDate, q.GameID,
			q.IsDoubleJeopardy, q.IsFinalJeopardy, q.CreatedAt)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("postgres: insert questions: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit insert: %w", err)
	}
	return len(records), nil
}

func questionWhere(f store.QuestionFilter) *where {
	w := &where{}
	if f.AirDate != "" {
		w.add("air_date = ?::date", f.AirDate)
	}
	if f.Start != "" {
		w.add("air_date >= ?::date", f.Start)
	}
	if f.End != "" {
		w.add("air_date <= ?::date", f.End)
	}
	if f.Round != "" {
		w.add("("+resolvedRound+") = ?", string(f.Round))
	}
	if f.Category != "" {
		w.add("lower(category) = lower(?)", f.Category)
	}
	if f.Search != "" {
		w.add("(question ILIKE '%' || ? || '%' OR answer ILIKE '%' || ? || '%' OR category ILIKE '%' || ? || '%')", f.Search, f.Search, f.Search)
	}
	return w
}

// ListQuestions returns matching records ordered by air date then insertion.
func (s *Store) ListQuestions(ctx context.Context, f store.QuestionFilter) ([]questions.QuestionRecord, int, error) {
	w := questionWhere(f)
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: count questions: %w", err)
	}

	query := "SELECT " + questionColumns + " FROM questions" + w.String() +
		" ORDER BY air_date ASC NULLS FIRST, created_at ASC, id ASC" + w.page(f.Limit, f.Offset)
	rows, err := s.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list questions: %w", err)
	}
	defer rows.Close()

	out := make([]questions.QuestionRecord, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}

// GetQuestion looks up one record.
func (s *Store) GetQuestion(ctx context.Context, id string) (questions.QuestionRecord, error) {
	q, err := scanQuestion(s.pool.QueryRow(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = $1", id))
	return q, notFound(err)
}

// UpdateQuestion overwrites the editable columns of q.ID.
func (s *Store) UpdateQuestion(ctx context.Context, q questions.QuestionRecord) (questions.QuestionRecord, error) {
	row := s.pool.QueryRow(ctx, `UPDATE questions SET question = $2, answer = $3, value = $4,
		category = $5, round = NULLIF($6, ''), knowledge_category = $7, difficulty = $8,
		was_triple_stumper = $9, air_date = NULLIF($10, '')::date, game_id = $11,
		is_double_jeopardy = $12, is_final_jeopardy = $13
		WHERE id = $1 RETURNING `+questionColumns,
		q.ID, q.Question, q.Answer, q.Value, q.Category, string(q.Round), q.KnowledgeCategory,
		q.Difficulty, q.WasTripleStumper, q.AirDate, q.GameID, q.IsDoubleJeopardy, q.IsFinalJeopardy)
	updated, err := scanQuestion(row)
	return updated, notFound(err)
}

// DeleteQuestion removes one record.
func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres: delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteQuestionsInRange removes dated records within [start, end].
func (s *Store) DeleteQuestionsInRange(ctx context.Context, start, end string) (int, error) {
	w := &where{}
	w.add("air_date IS NOT NULL")
	if start != "" {
		w.add("air_date >= ?::date", start)
	}
	if end != "" {
		w.add("air_date <= ?::date", end)
	}
	tag, err := s.pool.Exec(ctx, "DELETE FROM questions"+w.String(), w.args...)
	if err != nil {
		return 0, fmt.Errorf("postgres: delete range: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CountQuestions counts every record.
func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions").Scan(&n)
	return n, err
}

// FilledDates returns distinct dated air dates in [start, end].
func (s *Store) FilledDates(ctx context.Context, start, end string) ([]string, error) {
	sums, err := s.DateSummaries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sums))
	for _, sum := range sums {
		out = append(out, sum.AirDate)
	}
	return out, nil
}

// DateSummaries counts records and round/category columns per air date.
func (s *Store) DateSummaries(ctx context.Context, start, end string) ([]questions.DateSummary, error) {
	w := &where{}
	w.add("air_date IS NOT NULL")
	if start != "" {
		w.add("air_date >= ?::date", start)
	}
	if end != "" {
		w.add("air_date <= ?::date", end)
	}
	rows, err := s.pool.Query(ctx, `SELECT to_char(air_date, 'YYYY-MM-DD'), COUNT(*),
		COUNT(DISTINCT (`+resolvedRound+`) || '|' || category)
		FROM questions`+w.String()+` GROUP BY air_date ORDER BY air_date`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: date summaries: %w", err)
	}
	defer rows.Close()

	out := make([]questions.DateSummary, 0)
	for rows.Next() {
		var sum questions.DateSummary
		if err := rows.Scan(&sum.AirDate, &sum.QuestionCount, &sum.CategoryCount); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// ListCategories counts records per category.
func (s *Store) ListCategories(ctx context.Context) ([]store.CategorySummary, error) {
	rows, err := s.pool.Query(ctx, `SELECT COALESCE(NULLIF(category, ''), $1), COUNT(*)
		FROM questions GROUP BY 1 ORDER BY 2 DESC, 1 ASC`, questions.UnknownCategory)
	if err != nil {
		return nil, fmt.Errorf("postgres: list categories: %w", err)
	}
	defer rows.Close()

	out := make([]store.CategorySummary, 0)
	for rows.Next() {
		var c store.CategorySummary
		if err := rows.Scan(&c.Name, &c.QuestionCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
