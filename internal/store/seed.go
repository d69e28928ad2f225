package store

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/users"
)

// SeedDemo fills a memory store with a handful of players, games and
// disputes so the dashboard has something to show in development.
func SeedDemo(s *MemoryStore, now time.Time) {
	now = now.UTC()
	names := []string{"Ada", "Grace", "Linus", "Margaret", "Ken"}
	for i, name := range names {
		created := now.AddDate(0, 0, -i*3)
		s.PutUser(users.User{
			ID:          fmt.Sprintf("user-%d", i+1),
			Email:       fmt.Sprintf("%s@example.com", name),
			DisplayName: name,
			Role:        users.RolePlayer,
			CreatedAt:   created,
		})
	}
	s.PutUser(users.User{ID: "guest-1", DisplayName: "Guest", Role: users.RolePlayer, IsGuest: true, CreatedAt: now})

	for i := 0; i < 8; i++ {
		started := now.Add(-time.Duration(i) * 6 * time.Hour)
		g := playergames.Game{
			ID:            fmt.Sprintf("game-%d", i+1),
			UserID:        fmt.Sprintf("user-%d", i%len(names)+1),
			Mode:          playergames.ModeDaily,
			Status:        playergames.StatusInProgress,
			QuestionCount: 61,
			StartedAt:     started,
		}
		if i%3 != 0 {
			done := started.Add(25 * time.Minute)
			g.Status = playergames.StatusCompleted
			g.CompletedAt = &done
			g.CorrectCount = 30 + i
			g.Score = 400 * (i + 1)
		}
		s.PutPlayerGame(g)
	}

	answers := []string{"What is Paris?", "Who is Lincoln?", "What is a quark?"}
	for i, answer := range answers {
		s.PutDispute(disputes.Dispute{
			ID:           fmt.Sprintf("dispute-%d", i+1),
			QuestionID:   fmt.Sprintf("question-%d", i+1),
			UserID:       fmt.Sprintf("user-%d", i+1),
			GameID:       fmt.Sprintf("game-%d", i+1),
			PlayerAnswer: answer,
			Reason:       "spelling variant",
			Status:       disputes.StatusPending,
			CreatedAt:    now.Add(-time.Duration(i+1) * time.Hour),
		})
	}
}
