package store

import (
	"context"
	"sync"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
)

// MemoryStore keeps every admin entity in memory behind one lock.
type MemoryStore struct {
	mu        sync.RWMutex
	questions []questions.QuestionRecord
	users     map[string]users.User
	games     map[string]playergames.Game
	disputes  map[string]disputes.Dispute
	cronRuns  []cronlogs.Entry
	guestCfg  *guests.Config
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]users.User),
		games:    make(map[string]playergames.Game),
		disputes: make(map[string]disputes.Dispute),
	}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() {}

// PutUser inserts or replaces a user.
func (s *MemoryStore) PutUser(u users.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// PutPlayerGame inserts or replaces a played game.
func (s *MemoryStore) PutPlayerGame(g playergames.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

// PutDispute inserts or replaces a dispute.
func (s *MemoryStore) PutDispute(d disputes.Dispute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disputes[d.ID] = d
}
