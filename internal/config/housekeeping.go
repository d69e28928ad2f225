package config

import "time"

// HousekeepingConfig controls how long idle in-memory state is kept.
type HousekeepingConfig struct {
	SessionTTL time.Duration
	RunTTL     time.Duration
	Interval   time.Duration
}

func loadHousekeeping() HousekeepingConfig {
	return HousekeepingConfig{
		SessionTTL: durationEnvOrDefault(envSessionTTL, defaultSessionTTL),
		RunTTL:     durationEnvOrDefault(envRunTTL, defaultRunTTL),
		Interval:   durationEnvOrDefault(envSweepInterval, defaultSweepInterval),
	}
}
