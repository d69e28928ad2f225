package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

const (
	defaultDisputePageSize = 20
	maxDisputePageSize     = 100
)

const disputeColumns = `id, question_id, user_id, game_id, player_answer, correct_answer,
	reason, status, admin_note, created_at, resolved_at`

func scanDispute(row pgx.Row) (disputes.Dispute, error) {
	var d disputes.Dispute
	var status string
	err := row.Scan(&d.ID, &d.QuestionID, &d.UserID, &d.GameID, &d.PlayerAnswer, &d.Correct,
		&d.Reason, &status, &d.AdminNote, &d.CreatedAt, &d.ResolvedAt)
	d.Status = disputes.Status(status)
	return d, err
}

// ListDisputes returns one page of disputes, oldest first.
func (s *Store) ListDisputes(ctx context.Context, f disputes.Filter) ([]disputes.Dispute, int, error) {
	w := &where{}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM disputes"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: count disputes: %w", err)
	}
	offset, limit := store.PageBounds(f.Page, f.PageSize, defaultDisputePageSize, maxDisputePageSize)
	rows, err := s.pool.Query(ctx, "SELECT "+disputeColumns+" FROM disputes"+w.String()+
		" ORDER BY created_at ASC, id ASC"+w.page(limit, offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list disputes: %w", err)
	}
	defer rows.Close()

	out := make([]disputes.Dispute, 0)
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// GetDispute looks up one dispute.
func (s *Store) GetDispute(ctx context.Context, id string) (disputes.Dispute, error) {
	d, err := scanDispute(s.pool.QueryRow(ctx, "SELECT "+disputeColumns+" FROM disputes WHERE id = $1", id))
	return d, notFound(err)
}

// ResolveDispute records the admin decision.
func (s *Store) ResolveDispute(ctx context.Context, id string, res disputes.Resolution, at time.Time) (disputes.Dispute, error) {
	row := s.pool.QueryRow(ctx, `UPDATE disputes SET status = $2, admin_note = $3, resolved_at = $4
		WHERE id = $1 RETURNING `+disputeColumns, id, string(res.Status), res.Note, at)
	d, err := scanDispute(row)
	return d, notFound(err)
}

// CountDisputes counts disputes in status; empty counts all.
func (s *Store) CountDisputes(ctx context.Context, status disputes.Status) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM disputes WHERE $1 = '' OR status = $1", string(status)).Scan(&n)
	return n, err
}

// StartCronRun inserts a RUNNING entry.
func (s *Store) StartCronRun(ctx context.Context, e cronlogs.Entry) (cronlogs.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Status = cronlogs.StatusRunning
	_, err := s.pool.Exec(ctx, `INSERT INTO cron_logs (id, job_name, status, triggered_by, started_at)
		VALUES ($1, $2, $3, $4, $5)`, e.ID, e.JobName, string(e.Status), string(e.TriggeredBy), e.StartedAt)
	if err != nil {
		return cronlogs.Entry{}, fmt.Errorf("postgres: start cron run: %w", err)
	}
	return e, nil
}

// FinishCronRun stores the outcome of a run.
func (s *Store) FinishCronRun(ctx context.Context, e cronlogs.Entry) error {
	var result []byte
	if len(e.Result) > 0 {
		result = e.Result
	}
	tag, err := s.pool.Exec(ctx, `UPDATE cron_logs SET status = $2, completed_at = $3, duration_ms = $4,
		result = $5, error = $6 WHERE id = $1`,
		e.ID, string(e.Status), e.CompletedAt, e.DurationMS, result, e.Error)
	if err != nil {
		return fmt.Errorf("postgres: finish cron run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListCronRuns returns runs newest first, optionally for one job.
func (s *Store) ListCronRuns(ctx context.Context, job string, limit int) ([]cronlogs.Entry, error) {
	w := &where{}
	if job != "" {
		w.add("job_name = ?", job)
	}
	rows, err := s.pool.Query(ctx, `SELECT id, job_name, status, triggered_by, started_at, completed_at,
		duration_ms, result, error FROM cron_logs`+w.String()+" ORDER BY started_at DESC"+w.page(limit, 0), w.args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list cron runs: %w", err)
	}
	defer rows.Close()

	out := make([]cronlogs.Entry, 0)
	for rows.Next() {
		var e cronlogs.Entry
		var status, trigger string
		var result []byte
		if err := rows.Scan(&e.ID, &e.JobName, &status, &trigger, &e.StartedAt, &e.CompletedAt,
			&e.DurationMS, &result, &e.Error); err != nil {
			return nil, err
		}
		e.Status = cronlogs.Status(status)
		e.TriggeredBy = cronlogs.Trigger(trigger)
		if len(result) > 0 {
			e.Result = json.RawMessage(result)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PruneCronRuns deletes finished runs started before the cutoff.
func (s *Store) PruneCronRuns(ctx context.Context, before time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM cron_logs WHERE status <> $1 AND started_at < $2",
		string(cronlogs.StatusRunning), before)
	if err != nil {
		return 0, fmt.Errorf("postgres: prune cron runs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// GetGuestConfig returns the saved config or the default.
func (s *Store) GetGuestConfig(ctx context.Context) (guests.Config, error) {
	var raw []byte
	var updated time.Time
	err := s.pool.QueryRow(ctx, "SELECT config, updated_at FROM guest_config WHERE id = 1").Scan(&raw, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return guests.Default(), nil
	}
	if err != nil {
		return guests.Config{}, fmt.Errorf("postgres: get guest config: %w", err)
	}
	var cfg guests.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return guests.Config{}, fmt.Errorf("postgres: decode guest config: %w", err)
	}
	cfg.UpdatedAt = updated
	return cfg, nil
}

// SaveGuestConfig upserts the single guest config row.
func (s *Store) SaveGuestConfig(ctx context.Context, cfg guests.Config) (guests.Config, error) {
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return guests.Config{}, err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO guest_config (id, config, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET config = EXCLUDED.config, updated_at = EXCLUDED.updated_at`,
		raw, cfg.UpdatedAt)
	if err != nil {
		return guests.Config{}, fmt.Errorf("postgres: save guest config: %w", err)
	}
	return cfg, nil
}
