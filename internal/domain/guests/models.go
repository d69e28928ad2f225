package guests

import "time"

// Config controls what guest (not signed in) players may do.
type Config struct {
	Enabled         bool      `json:"enabled"`
	MaxGamesPerDay  int       `json:"maxGamesPerDay" validate:"min=0,max=100"`
	AllowedModes    []string  `json:"allowedModes" validate:"dive,oneof=daily practice"`
	SessionTTLHours int       `json:"sessionTtlHours" validate:"min=1,max=720"`
	Banner          string    `json:"banner,omitempty" validate:"max=280"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Default is used until an admin saves a config.
func Default() Config {
	return Config{
		Enabled:         true,
		MaxGamesPerDay:  3,
		AllowedModes:    []string{"daily"},
		SessionTTLHours: 24,
	}
}
