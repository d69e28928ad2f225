package playergames

import "time"

// Mode is how a game session was started.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
	ModeGuest    Mode = "guest"
)

// Status tracks whether a played game finished.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

// Game is one play-through by a user.
type Game struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Mode          Mode       `json:"mode"`
	AirDate       string     `json:"airDate,omitempty"`
	Status        Status     `json:"status"`
	Score         int        `json:"score"`
	CorrectCount  int        `json:"correctCount"`
	QuestionCount int        `json:"questionCount"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Filter narrows a game listing.
type Filter struct {
	UserID string
	Status Status
	Limit  int
	Offset int
}

// Update carries admin corrections to a played game.
type Update struct {
	Score        *int    `json:"score,omitempty" validate:"omitempty"`
	CorrectCount *int    `json:"correctCount,omitempty" validate:"omitempty,min=0"`
	Status       *Status `json:"status,omitempty" validate:"omitempty,oneof=in_progress completed abandoned"`
}
