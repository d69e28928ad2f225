package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
)

// ListUsers returns users newest first.
func (s *MemoryStore) ListUsers(_ context.Context, f users.Filter) ([]users.User, int, error) {
	s.mu.RLock()
	matched := make([]users.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsGuest && !f.IncludeGuest {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Email), needle) && !strings.Contains(strings.ToLower(u.DisplayName), needle) {
				continue
			}
		}
		matched = append(matched, s.withGameCount(u))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	lo, hi := window(len(matched), f.Offset, f.Limit)
	return matched[lo:hi], len(matched), nil
}

// withGameCount fills GamesPlayed; callers hold the read lock.
func (s *MemoryStore) withGameCount(u users.User) users.User {
	n := 0
	for _, g := range s.games {
		if g.UserID == u.ID {
			n++
		}
	}
	u.GamesPlayed = n
	return u
}

// GetUser looks up a user by ID.
func (s *MemoryStore) GetUser(_ context.Context, id string) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return s.withGameCount(u), nil
}

// UpdateUser applies the non-nil fields of upd.
func (s *MemoryStore) UpdateUser(_ context.Context, id string, upd users.Update) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	s.users[id] = u
	return s.withGameCount(u), nil
}

// DeleteUser removes a user together with their games and disputes.
func (s *MemoryStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	for gid, g := range s.games {
		if g.UserID == id {
			delete(s.games, gid)
		}
	}
	for did, d := range s.disputes {
		if d.UserID == id {
			delete(s.disputes, did)
		}
	}
	return nil
}

// CountUsers counts registered (non-guest) users.
func (s *MemoryStore) CountUsers(ctx context.Context) (int, error) {
	return s.CountUsersSince(ctx, time.Time{})
}

// CountUsersSince counts registered users created at or after since.
func (s *MemoryStore) CountUsersSince(_ context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if !u.IsGuest && !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// ListPlayerGames returns games most recently started first.
func (s *MemoryStore) ListPlayerGames(_ context.Context, f playergames.Filter) ([]playergames.Game, int, error) {
	s.mu.RLock()
	matched := make([]playergames.Game, 0, len(s.games))
	for _, g := range s.games {
		if f.UserID != "" && g.UserID != f.UserID {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		matched = append(matched, g)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartedAt.Equal(matched[j].StartedAt) {
			return matched[i].StartedAt.After(matched[j].StartedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	lo, hi := window(len(matched), f.Offset, f.Limit)
	return matched[lo:hi], len(matched), nil
}

// GetPlayerGame looks up a played game by ID.
func (s *MemoryStore) GetPlayerGame(_ context.Context, id string) (playergames.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return playergames.Game{}, ErrNotFound
	}
	return g, nil
}

// UpdatePlayerGame applies the non-nil fields of upd.
func (s *MemoryStore) UpdatePlayerGame(_ context.Context, id string, upd playergames.Update) (playergames.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return playergames.Game{}, ErrNotFound
	}
	if upd.Score != nil {
		g.Score = *upd.Score
	}
	if upd.CorrectCount != nil {
		g.CorrectCount = *upd.CorrectCount
	}
	if upd.Status != nil {
		g.Status = *upd.Status
	}
	s.games[id] = g
	return g, nil
}

// DeletePlayerGame removes a played game.
func (s *MemoryStore) DeletePlayerGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return ErrNotFound
	}
	delete(s.games, id)
	return nil
}

// CountPlayerGames counts every played game.
func (s *MemoryStore) CountPlayerGames(ctx context.Context) (int, error) {
	return s.CountPlayerGamesSince(ctx, time.Time{})
}

// CountPlayerGamesSince counts games started at or after since.
func (s *MemoryStore) CountPlayerGamesSince(_ context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, g := range s.games {
		if !g.StartedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
