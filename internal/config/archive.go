package config

import "time"

// ArchiveConfig controls how the trivia archive is reached.
type ArchiveConfig struct {
	Provider      string // fixture | jarchive
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	MinInterval   time.Duration // minimum spacing between upstream requests
	RetryAttempts int
	RetryBackoff  time.Duration
	CacheEnabled  bool
	CacheDir      string
	// MaxRangeDays caps one batch fetch.
	MaxRangeDays int
	// FixtureFailDates makes the fixture provider fail for these air dates.
	FixtureFailDates []string
}

func loadArchive() ArchiveConfig {
	return ArchiveConfig{
		Provider:         envOrDefault(envArchiveProvider, defaultArchiveProvider),
		BaseURL:          envOrDefault(envArchiveBaseURL, defaultArchiveBaseURL),
		UserAgent:        envOrDefault(envArchiveUserAgent, defaultArchiveAgent),
		Timeout:          durationEnvOrDefault(envArchiveTimeout, defaultArchiveTimeout),
		MinInterval:      durationEnvOrDefault(envArchiveInterval, defaultArchiveInterval),
		RetryAttempts:    intEnvOrDefault(envArchiveRetries, defaultArchiveRetries),
		RetryBackoff:     durationEnvOrDefault(envArchiveBackoff, defaultArchiveBackoff),
		CacheEnabled:     boolEnvOrDefault(envArchiveCacheOn, defaultArchiveCacheOn),
		CacheDir:         envOrDefault(envArchiveCacheDir, defaultArchiveCacheDir),
		MaxRangeDays:     intEnvOrDefault(envArchiveMaxRange, defaultMaxRangeDays),
		FixtureFailDates: listEnvOrDefault(envArchiveFixtureFail, nil),
	}
}
