package config

import "time"

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string // text | json
	// RollbarToken enables forwarding of error records.
	RollbarToken string
}

// MetricsConfig controls telemetry export: a Prometheus scrape endpoint on
// Port, plus OTLP push when OtlpEndpoint is set.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
	// ExportInterval spaces OTLP pushes.
	ExportInterval time.Duration
}

func loadLog() LogConfig {
	return LogConfig{
		Level:        envOrDefault(envLogLevel, defaultLogLevel),
		Format:       envOrDefault(envLogFormat, defaultLogFormat),
		RollbarToken: envOrDefault(envRollbar, ""),
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:        boolEnvOrDefault(envMetricsOn, true),
		Port:           envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint:   envOrDefault(envOtelEndpoint, ""),
		ServiceName:    envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure:   boolEnvOrDefault(envOtelInsecure, true),
		ExportInterval: durationEnvOrDefault(envExportEvery, defaultExportEvery),
	}
}
