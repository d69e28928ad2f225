package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type ingestStats struct {
	succeeded int
	failed    int
}

type cronStats struct {
	runs         int
	failures     int
	lastStatus   string
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// ingest items and cron runs, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*providerStats
	ingest map[string]*ingestStats
	cron   map[string]*cronStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:  make(map[string]*providerStats),
		ingest: make(map[string]*ingestStats),
		cron:   make(map[string]*cronStats),
		otel:   otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordIngestItem counts one fetched or pushed game in a batch run.
func (r *Recorder) RecordIngestItem(phase string, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.ingest[phase]
	if !ok {
		stats = &ingestStats{}
		r.ingest[phase] = stats
	}
	if err != nil {
		stats.failed++
	} else {
		stats.succeeded++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordIngestItem(phase, err)
	}
}

// RecordCronRun tracks a finished job run.
func (r *Recorder) RecordCronRun(job, trigger, status string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.cron[job]
	if !ok {
		stats = &cronStats{}
		r.cron[job] = stats
	}
	stats.runs++
	stats.lastStatus = status
	stats.lastDuration = duration
	if status == "FAILED" {
		stats.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCronRun(job, trigger, status, duration)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ObserveGauge exports fn as a gauge sampled at every collection. It is a
// no-op when telemetry is disabled.
func (r *Recorder) ObserveGauge(name, description string, fn func() int) error {
	if r == nil || r.otel == nil || fn == nil {
		return nil
	}
	return r.otel.observeGauge(name, description, fn)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// IngestCounts returns succeeded/failed item counts for a phase.
func (r *Recorder) IngestCounts(phase string) (succeeded, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.ingest[phase]; ok {
		return stats.succeeded, stats.failed
	}
	return 0, 0
}

// CronSnapshot is a copy of the run stats for one job.
type CronSnapshot struct {
	Runs         int
	Failures     int
	LastStatus   string
	LastDuration time.Duration
}

func (r *Recorder) CronSnapshot(job string) CronSnapshot {
	if r == nil {
		return CronSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.cron[job]
	if !ok {
		return CronSnapshot{}
	}
	return CronSnapshot{
		Runs:         stats.runs,
		Failures:     stats.failures,
		LastStatus:   stats.lastStatus,
		LastDuration: stats.lastDuration,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
