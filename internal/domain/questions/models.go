package questions

import "time"

// Round identifies which board a clue was played on.
type Round string

const (
	RoundSingle Round = "single"
	RoundDouble Round = "double"
	RoundFinal  Round = "final"
)

// Rounds lists every round in board order.
var Rounds = []Round{RoundSingle, RoundDouble, RoundFinal}

// Valid reports whether r is one of the known rounds.
func (r Round) Valid() bool {
	return r == RoundSingle || r == RoundDouble || r == RoundFinal
}

// QuestionRecord is one clue as stored. IsDoubleJeopardy and IsFinalJeopardy
// are only present on rows written before Round existed.
type QuestionRecord struct {
	ID                string    `json:"id,omitempty"`
	Question          string    `json:"question"`
	Answer            string    `json:"answer"`
	Value             int       `json:"value"`
	Category          string    `json:"category"`
	Round             Round     `json:"round,omitempty"`
	KnowledgeCategory string    `json:"knowledgeCategory,omitempty"`
	Difficulty        string    `json:"difficulty,omitempty"`
	WasTripleStumper  bool      `json:"wasTripleStumper"`
	AirDate           string    `json:"airDate,omitempty"`
	GameID            string    `json:"gameId,omitempty"`
	IsDoubleJeopardy  *bool     `json:"isDoubleJeopardy,omitempty"`
	IsFinalJeopardy   *bool     `json:"isFinalJeopardy,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Category groups the clues of one board column.
type Category struct {
	Name      string           `json:"name"`
	Round     Round            `json:"round"`
	Questions []QuestionRecord `json:"questions"`
}

// FetchedGame is a game pulled from the trivia archive, held in memory until
// it is pushed to storage or discarded.
type FetchedGame struct {
	GameID        string           `json:"gameId"`
	ShowNumber    int              `json:"showNumber,omitempty"`
	AirDate       string           `json:"airDate,omitempty"`
	Title         string           `json:"title"`
	QuestionCount int              `json:"questionCount"`
	Categories    []Category       `json:"categories"`
	Questions     []QuestionRecord `json:"questions"`
}

// GameGroup is the per-date view of stored questions.
type GameGroup struct {
	AirDate        string     `json:"airDate"`
	SingleJeopardy []Category `json:"singleJeopardy"`
	DoubleJeopardy []Category `json:"doubleJeopardy"`
	FinalJeopardy  []Category `json:"finalJeopardy"`
	QuestionCount  int        `json:"questionCount"`
}

// Round returns the category list for r.
func (g *GameGroup) Round(r Round) []Category {
	switch r {
	case RoundDouble:
		return g.DoubleJeopardy
	case RoundFinal:
		return g.FinalJeopardy
	default:
		return g.SingleJeopardy
	}
}

// DateSummary describes what storage holds for one air date.
type DateSummary struct {
	AirDate       string `json:"airDate"`
	QuestionCount int    `json:"questionCount"`
	CategoryCount int    `json:"categoryCount"`
}
