package ingest

import (
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// CandidateView is a fetched game as shown for review.
type CandidateView struct {
	GameID        string `json:"gameId"`
	AirDate       string `json:"airDate,omitempty"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
	CategoryCount int    `json:"categoryCount"`
	Selected      bool   `json:"selected"`
}

// ExistingView is a stored date offered for deletion.
type ExistingView struct {
	questions.DateSummary
	Selected bool `json:"selected"`
}

// View is a consistent snapshot of a run.
type View struct {
	ID         string          `json:"id"`
	State      State           `json:"state"`
	Start      string          `json:"start,omitempty"`
	End        string          `json:"end,omitempty"`
	Candidates []CandidateView `json:"candidates"`
	Selected   int             `json:"selected"`
	Failures   []DateFailure   `json:"failures"`
	Existing   []ExistingView  `json:"existing"`
	Progress   Progress        `json:"progress"`
	Message    string          `json:"message,omitempty"`
	LastPush   *PushResult     `json:"lastPush,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Snapshot copies the run state.
func (r *Run) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := View{
		ID:         r.id,
		State:      r.state,
		Start:      r.start,
		End:        r.end,
		Candidates: make([]CandidateView, 0, len(r.candidates)),
		Failures:   append([]DateFailure{}, r.failures...),
		Existing:   make([]ExistingView, 0, len(r.existing)),
		Progress:   r.progress,
		Message:    r.message,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
	}
	for _, g := range r.candidates {
		sel := r.selected[g.GameID]
		if sel {
			v.Selected++
		}
		v.Candidates = append(v.Candidates, CandidateView{
			GameID:        g.GameID,
			AirDate:       g.AirDate,
			Title:         g.Title,
			QuestionCount: g.QuestionCount,
			CategoryCount: len(g.Categories),
			Selected:      sel,
		})
	}
	for _, s := range r.existing {
		v.Existing = append(v.Existing, ExistingView{DateSummary: s, Selected: r.existingSelected[s.AirDate]})
	}
	if r.lastPush != nil {
		p := *r.lastPush
		v.LastPush = &p
	}
	return v
}

// Candidate returns a fetched game by id for preview.
func (r *Run) Candidate(gameID string) (questions.FetchedGame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.candidates {
		if g.GameID == gameID {
			return g, true
		}
	}
	return questions.FetchedGame{}, false
}
