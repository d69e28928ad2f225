package config

import "time"

const (
	envPort       = "PORT"
	envEnv        = "APP_ENV"
	envVersion    = "APP_VERSION"
	envAdminToken = "ADMIN_TOKEN"
	envCronSecret = "CRON_SECRET"
	envTimezone   = "APP_TIMEZONE"
	envLogLevel   = "LOG_LEVEL"
	envLogFormat  = "LOG_FORMAT"
	envRollbar    = "ROLLBAR_TOKEN"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envExportEvery  = "METRICS_EXPORT_INTERVAL"

	envArchiveProvider    = "ARCHIVE_PROVIDER"
	envArchiveBaseURL     = "ARCHIVE_BASE_URL"
	envArchiveUserAgent   = "ARCHIVE_USER_AGENT"
	envArchiveTimeout     = "ARCHIVE_TIMEOUT"
	envArchiveInterval    = "ARCHIVE_MIN_INTERVAL"
	envArchiveRetries     = "ARCHIVE_RETRY_ATTEMPTS"
	envArchiveBackoff     = "ARCHIVE_RETRY_BACKOFF"
	envArchiveCacheOn     = "ARCHIVE_CACHE_ENABLED"
	envArchiveCacheDir    = "ARCHIVE_CACHE_DIR"
	envArchiveFixtureFail = "ARCHIVE_FIXTURE_FAIL_DATES"

	envStoreDriver   = "STORE_DRIVER"
	envDatabaseURL   = "DATABASE_URL"
	envDBMaxConns    = "DATABASE_MAX_CONNS"
	envDBMigrations  = "DATABASE_MIGRATE"
	envSeedFixtures  = "STORE_SEED"
	envEmailProvider = "EMAIL_PROVIDER"
	envSendgridKey   = "SENDGRID_API_KEY"
	envEmailFrom     = "EMAIL_FROM_ADDRESS"
	envEmailFromName = "EMAIL_FROM_NAME"

	envCronEnabled    = "CRON_SCHEDULER_ENABLED"
	envReportSchedule = "CRON_DAILY_REPORT_SCHEDULE"
	envPruneSchedule  = "CRON_PRUNE_SCHEDULE"
	envCronRetention  = "CRON_LOG_RETENTION_DAYS"
	envReportTo       = "CRON_REPORT_RECIPIENTS"
	envReportWindow   = "CRON_REPORT_COVERAGE_DAYS"

	defaultPort     = "4000"
	defaultEnv      = "development"
	defaultVersion  = "dev"
	defaultTimezone = "America/New_York"

	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	defaultMetricsPort = "9090"
	defaultServiceName = "trivia-admin-service"
	defaultExportEvery = 15 * time.Second

	defaultArchiveProvider = "fixture"
	defaultArchiveBaseURL  = "https://j-archive.com"
	defaultArchiveAgent    = "trivia-admin-service/1.0"
	defaultArchiveTimeout  = 20 * time.Second
	// Spacing between archive requests; the archive is a volunteer-run site.
	defaultArchiveInterval = 1500 * time.Millisecond
	defaultArchiveRetries  = 3
	defaultArchiveBackoff  = 2 * time.Second
	defaultArchiveCacheOn  = true
	defaultArchiveCacheDir = "data/archive"

	defaultStoreDriver = "memory"
	defaultDBMaxConns  = 8

	defaultEmailProvider = "log"
	defaultEmailFrom     = "admin@trivia.local"
	defaultEmailFromName = "Trivia Admin"

	defaultReportSchedule = "0 7 * * *"
	defaultPruneSchedule  = "30 3 * * *"
	defaultCronRetention  = 30
	defaultReportWindow   = 30
)

const (
	envSessionTTL      = "DASHBOARD_SESSION_TTL"
	envRunTTL          = "INGEST_RUN_TTL"
	envSweepInterval   = "HOUSEKEEPING_INTERVAL"
	envArchiveMaxRange = "ARCHIVE_MAX_RANGE_DAYS"

	defaultSessionTTL    = 12 * time.Hour
	defaultRunTTL        = 24 * time.Hour
	defaultSweepInterval = 10 * time.Minute
	defaultMaxRangeDays  = 366
)
