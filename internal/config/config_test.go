package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Archive.Provider != defaultArchiveProvider {
		t.Fatalf("expected default archive provider %s, got %s", defaultArchiveProvider, cfg.Archive.Provider)
	}
	if cfg.Archive.MinInterval != defaultArchiveInterval {
		t.Fatalf("expected default archive interval %s, got %s", defaultArchiveInterval, cfg.Archive.MinInterval)
	}
	if cfg.Store.Driver != defaultStoreDriver {
		t.Fatalf("expected default store driver %s, got %s", defaultStoreDriver, cfg.Store.Driver)
	}
	if cfg.Email.Provider != defaultEmailProvider {
		t.Fatalf("expected default email provider %s, got %s", defaultEmailProvider, cfg.Email.Provider)
	}
	if cfg.Cron.Enabled {
		t.Fatal("expected scheduler disabled by default")
	}
	if cfg.Cron.DailyReportSchedule != defaultReportSchedule {
		t.Fatalf("expected default report schedule, got %s", cfg.Cron.DailyReportSchedule)
	}
	if cfg.AdminToken != "" || cfg.CronSecret != "" {
		t.Fatal("expected empty secrets by default")
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
	if cfg.Housekeeping.SessionTTL != defaultSessionTTL || cfg.Housekeeping.Interval != defaultSweepInterval {
		t.Fatalf("unexpected housekeeping defaults %+v", cfg.Housekeeping)
	}
	if cfg.Log.Level != defaultLogLevel || cfg.Log.Format != defaultLogFormat || cfg.Log.RollbarToken != "" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Archive.MaxRangeDays != defaultMaxRangeDays {
		t.Fatalf("expected default max range, got %d", cfg.Archive.MaxRangeDays)
	}
}

func TestLoadHousekeepingOverrides(t *testing.T) {
	t.Setenv(envSessionTTL, "30m")
	t.Setenv(envRunTTL, "2h")
	t.Setenv(envSweepInterval, "1m")

	cfg := Load()
	if cfg.Housekeeping.SessionTTL != 30*time.Minute || cfg.Housekeeping.RunTTL != 2*time.Hour || cfg.Housekeeping.Interval != time.Minute {
		t.Fatalf("unexpected housekeeping %+v", cfg.Housekeeping)
	}
}

func TestLoadTelemetryOverrides(t *testing.T) {
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envRollbar, "rb-token")
	t.Setenv(envMetricsOn, "false")
	t.Setenv(envOtelEndpoint, "collector:4318")

	cfg := Load()
	if cfg.Log != (LogConfig{Level: "debug", Format: "json", RollbarToken: "rb-token"}) {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.OtlpEndpoint != "collector:4318" {
		t.Fatalf("unexpected metrics config %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envArchiveProvider, "jarchive")
	t.Setenv(envArchiveBaseURL, "http://archive.test")
	t.Setenv(envArchiveInterval, "3s")
	t.Setenv(envArchiveFixtureFail, "2025-01-02, ,2025-01-05")
	t.Setenv(envStoreDriver, "postgres")
	t.Setenv(envDatabaseURL, "postgres://localhost/trivia")
	t.Setenv(envSendgridKey, "sg-key")
	t.Setenv(envReportTo, "a@example.com,b@example.com")
	t.Setenv(envCronEnabled, "true")
	t.Setenv(envAdminToken, "admin-secret")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Archive.Provider != "jarchive" || cfg.Archive.BaseURL != "http://archive.test" {
		t.Fatalf("unexpected archive config %+v", cfg.Archive)
	}
	if cfg.Archive.MinInterval != 3*time.Second {
		t.Fatalf("expected 3s interval, got %s", cfg.Archive.MinInterval)
	}
	if len(cfg.Archive.FixtureFailDates) != 2 || cfg.Archive.FixtureFailDates[1] != "2025-01-05" {
		t.Fatalf("expected blank entries dropped, got %v", cfg.Archive.FixtureFailDates)
	}
	if cfg.Store.Driver != "postgres" || cfg.Store.DatabaseURL != "postgres://localhost/trivia" {
		t.Fatalf("unexpected store config %+v", cfg.Store)
	}
	if cfg.Email.APIKey != "sg-key" {
		t.Fatalf("expected sendgrid key override, got %s", cfg.Email.APIKey)
	}
	if len(cfg.Cron.ReportRecipients) != 2 || !cfg.Cron.Enabled {
		t.Fatalf("unexpected cron config %+v", cfg.Cron)
	}
	if cfg.AdminToken != "admin-secret" {
		t.Fatalf("expected admin token override, got %s", cfg.AdminToken)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envArchiveInterval, "not-a-duration")

	cfg := Load()

	if cfg.Archive.MinInterval != defaultArchiveInterval {
		t.Fatalf("expected default interval on invalid value, got %s", cfg.Archive.MinInterval)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envArchiveTimeout, "0s")

	cfg := Load()

	if cfg.Archive.Timeout != defaultArchiveTimeout {
		t.Fatalf("expected default timeout on non-positive value, got %s", cfg.Archive.Timeout)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PORT=7000\nCRON_SECRET=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envPort, "6000")
	t.Setenv(envCronSecret, "")
	os.Unsetenv(envCronSecret)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(envCronSecret) })

	cfg := Load()
	if cfg.Port != "6000" {
		t.Fatalf("expected real environment to win, got %s", cfg.Port)
	}
	if cfg.CronSecret != "from-file" {
		t.Fatalf("expected secret from file, got %q", cfg.CronSecret)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
