package disputes

import "time"

// Status of a dispute; new disputes start pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Dispute is a player's claim that their answer was wrongly judged.
type Dispute struct {
	ID           string     `json:"id"`
	QuestionID   string     `json:"questionId"`
	UserID       string     `json:"userId"`
	GameID       string     `json:"gameId,omitempty"`
	PlayerAnswer string     `json:"playerAnswer"`
	Correct      string     `json:"correctAnswer,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	Status       Status     `json:"status"`
	AdminNote    string     `json:"adminNote,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
}

// Filter narrows a dispute listing; an empty Status means all.
type Filter struct {
	Status   Status
	Page     int
	PageSize int
}

// Pagination describes where a page sits in the full listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of disputes.
type Page struct {
	Disputes   []Dispute  `json:"disputes"`
	Pagination Pagination `json:"pagination"`
}

// Resolution is the admin decision on a dispute.
type Resolution struct {
	Status Status `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}
