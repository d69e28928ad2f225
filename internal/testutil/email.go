package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/trivia-admin-service/internal/email"
)

// StubSender records sent messages; recipients in Fail are rejected.
type StubSender struct {
	Fail map[string]error

	mu   sync.Mutex
	sent []email.Message
}

// Send records msg or returns the scripted failure.
func (s *StubSender) Send(_ context.Context, msg email.Message) error {
	if err := s.Fail[msg.To]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages.
func (s *StubSender) Sent() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.sent...)
}
