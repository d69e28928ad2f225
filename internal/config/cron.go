package config

// CronConfig controls the in-process job scheduler.
type CronConfig struct {
	Enabled             bool
	DailyReportSchedule string
	PruneSchedule       string
	RetentionDays       int
	ReportRecipients    []string
	// CoverageDays is the trailing window the daily report inspects.
	CoverageDays int
}

func loadCron() CronConfig {
	return CronConfig{
		Enabled:             boolEnvOrDefault(envCronEnabled, false),
		DailyReportSchedule: envOrDefault(envReportSchedule, defaultReportSchedule),
		PruneSchedule:       envOrDefault(envPruneSchedule, defaultPruneSchedule),
		RetentionDays:       intEnvOrDefault(envCronRetention, defaultCronRetention),
		ReportRecipients:    listEnvOrDefault(envReportTo, nil),
		CoverageDays:        intEnvOrDefault(envReportWindow, defaultReportWindow),
	}
}
