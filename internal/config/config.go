package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	Env        string
	Version    string
	AdminToken string
	CronSecret string
	// Timezone decides which calendar day counts as "today".
	Timezone string
	Log      LogConfig
	Archive  ArchiveConfig
	Store    StoreConfig
	Email    EmailConfig
	Cron     CronConfig
	Metrics  MetricsConfig
	// Housekeeping drops idle dashboard sessions and ingest runs.
	Housekeeping HousekeepingConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		Env:          envOrDefault(envEnv, defaultEnv),
		Version:      envOrDefault(envVersion, defaultVersion),
		AdminToken:   envOrDefault(envAdminToken, ""),
		CronSecret:   envOrDefault(envCronSecret, ""),
		Timezone:     envOrDefault(envTimezone, defaultTimezone),
		Log:          loadLog(),
		Archive:      loadArchive(),
		Store:        loadStore(),
		Email:        loadEmail(),
		Cron:         loadCron(),
		Metrics:      loadMetrics(),
		Housekeeping: loadHousekeeping(),
	}
}
