package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

const userColumns = `u.id, u.email, u.display_name, u.role, u.is_guest, u.created_at, u.last_active_at,
	(SELECT COUNT(*) FROM player_games g WHERE g.user_id = u.id)`

func scanUser(row pgx.Row) (users.User, error) {
	var u users.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &role, &u.IsGuest, &u.CreatedAt, &u.LastActiveAt, &u.GamesPlayed)
	u.Role = users.Role(role)
	return u, err
}

// ListUsers returns users newest first.
func (s *Store) ListUsers(ctx context.Context, f users.Filter) ([]users.User, int, error) {
	w := &where{}
	if !f.IncludeGuest {
		w.add("u.is_guest = FALSE")
	}
	if f.Search != "" {
		w.add("(u.email ILIKE '%' || ? || '%' OR u.display_name ILIKE '%' || ? || '%')", f.Search, f.Search)
	}
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users u"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: count users: %w", err)
	}
	rows, err := s.pool.Query(ctx, "SELECT "+userColumns+" FROM users u"+w.String()+
		" ORDER BY u.created_at DESC, u.id ASC"+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list users: %w", err)
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

// GetUser looks up one user.
func (s *Store) GetUser(ctx context.Context, id string) (users.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1", id))
	return u, notFound(err)
}

// UpdateUser applies the non-nil fields of upd.
func (s *Store) UpdateUser(ctx context.Context, id string, upd users.Update) (users.User, error) {
	var role *string
	if upd.Role != nil {
		r := string(*upd.Role)
		role = &r
	}
	tag, err := s.pool.Exec(ctx, `UPDATE users SET display_name = COALESCE($2, display_name),
		role = COALESCE($3, role) WHERE id = $1`, id, upd.DisplayName, role)
	if err != nil {
		return users.User{}, fmt.Errorf("postgres: update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return users.User{}, store.ErrNotFound
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user; games and disputes cascade.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "users", id)
}

// CountUsers counts registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	return s.CountUsersSince(ctx, time.Time{})
}

// CountUsersSince counts registered users created at or after since.
func (s *Store) CountUsersSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE is_guest = FALSE AND created_at >= $1", since).Scan(&n)
	return n, err
}

const gameColumns = `id, user_id, mode, COALESCE(to_char(air_date, 'YYYY-MM-DD'), ''), status,
	score, correct_count, question_count, started_at, completed_at`

func scanGame(row pgx.Row) (playergames.Game, error) {
	var g playergames.Game
	var mode, status string
	err := row.Scan(&g.ID, &g.UserID, &mode, &g.AirDate, &status, &g.Score, &g.CorrectCount,
		&g.QuestionCount, &g.StartedAt, &g.CompletedAt)
	g.Mode = playergames.Mode(mode)
	g.Status = playergames.Status(status)
	return g, err
}

// ListPlayerGames returns games most recently started first.
func (s *Store) ListPlayerGames(ctx context.Context, f playergames.Filter) ([]playergames.Game, int, error) {
	w := &where{}
	if f.UserID != "" {
		w.add("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM player_games"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: count games: %w", err)
	}
	rows, err := s.pool.Query(ctx, "SELECT "+gameColumns+" FROM player_games"+w.String()+
		" ORDER BY started_at DESC, id ASC"+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list games: %w", err)
	}
	defer rows.Close()

	out := make([]playergames.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

// GetPlayerGame looks up one played game.
func (s *Store) GetPlayerGame(ctx context.Context, id string) (playergames.Game, error) {
	g, err := scanGame(s.pool.QueryRow(ctx, "SELECT "+gameColumns+" FROM player_games WHERE id = $1", id))
	return g, notFound(err)
}

// UpdatePlayerGame applies the non-nil fields of upd.
func (s *Store) UpdatePlayerGame(ctx context.Context, id string, upd playergames.Update) (playergames.Game, error) {
	var status *string
	if upd.Status != nil {
		st := string(*upd.Status)
		status = &st
	}
	row := s.pool.QueryRow(ctx, `UPDATE player_games SET score = COALESCE($2, score),
		correct_count = COALESCE($3, correct_count), status = COALESCE($4, status)
		WHERE id = $1 RETURNING `+gameColumns, id, upd.Score, upd.CorrectCount, status)
	g, err := scanGame(row)
	return g, notFound(err)
}

// DeletePlayerGame removes a played game.
func (s *Store) DeletePlayerGame(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "player_games", id)
}

// CountPlayerGames counts every played game.
func (s *Store) CountPlayerGames(ctx context.Context) (int, error) {
	return s.CountPlayerGamesSince(ctx, time.Time{})
}

// CountPlayerGamesSince counts games started at or after since.
func (s *Store) CountPlayerGamesSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM player_games WHERE started_at >= $1", since).Scan(&n)
	return n, err
}

// deleteByID deletes from a fixed table name; table is never user input.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres: delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
