package users

import "time"

// Role is the access level of a player account.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// User is a player account as seen by admins.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName"`
	Role         Role       `json:"role"`
	IsGuest      bool       `json:"isGuest"`
	GamesPlayed  int        `json:"gamesPlayed"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
}

// Filter narrows a user listing.
type Filter struct {
	Search       string
	IncludeGuest bool
	Limit        int
	Offset       int
}

// Update carries the admin-editable fields; nil leaves a field unchanged.
type Update struct {
	DisplayName *string `json:"displayName,omitempty" validate:"omitempty,min=1,max=64"`
	Role        *Role   `json:"role,omitempty" validate:"omitempty,oneof=player admin"`
}
