package config

// StoreConfig selects and configures persistence.
type StoreConfig struct {
	Driver      string // memory | postgres
	DatabaseURL string
	MaxConns    int
	Migrate     bool
	// Seed loads demo users/games/disputes into the memory store.
	Seed bool
}

func loadStore() StoreConfig {
	return StoreConfig{
		Driver:      envOrDefault(envStoreDriver, defaultStoreDriver),
		DatabaseURL: envOrDefault(envDatabaseURL, ""),
		MaxConns:    intEnvOrDefault(envDBMaxConns, defaultDBMaxConns),
		Migrate:     boolEnvOrDefault(envDBMigrations, true),
		Seed:        boolEnvOrDefault(envSeedFixtures, false),
	}
}
