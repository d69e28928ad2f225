package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names as exported to Prometheus and OTLP.
const (
	instHTTPRequests     = "http_requests_total"
	instHTTPLatency      = "http_request_duration_ms"
	instProviderAttempts = "provider_attempts_total"
	instProviderErrors   = "provider_errors_total"
	instProviderLatency  = "provider_duration_ms"
	instRateLimitHits    = "provider_rate_limit_hits_total"
	instRetryAfter       = "provider_retry_after_ms"
	instIngestItems      = "ingest_items_total"
	instCronRuns         = "cron_runs_total"
	instCronLatency      = "cron_run_duration_ms"
)

type instrumentSpec struct {
	name        string
	description string
}

var counterSpecs = []instrumentSpec{
	{instHTTPRequests, "Admin API requests served."},
	{instProviderAttempts, "Archive fetch attempts, including retries."},
	{instProviderErrors, "Archive fetch attempts that failed."},
	{instRateLimitHits, "Archive responses that signalled rate limiting."},
	{instIngestItems, "Dates fetched or games pushed by batch runs."},
	{instCronRuns, "Scheduled or manual job runs."},
}

var histogramSpecs = []instrumentSpec{
	{instHTTPLatency, "Admin API request latency."},
	{instProviderLatency, "Archive fetch latency."},
	{instRetryAfter, "Retry-After advertised by the archive."},
	{instCronLatency, "Job run duration."},
}

type otelInstruments struct {
	ctx        context.Context
	meter      metric.Meter
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	o := &otelInstruments{
		ctx:        context.Background(),
		meter:      provider.Meter(defaultServiceName),
		counters:   make(map[string]metric.Int64Counter, len(counterSpecs)),
		histograms: make(map[string]metric.Float64Histogram, len(histogramSpecs)),
	}
	for _, spec := range counterSpecs {
		c, err := o.meter.Int64Counter(spec.name, metric.WithDescription(spec.description))
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", spec.name, err)
		}
		o.counters[spec.name] = c
	}
	for _, spec := range histogramSpecs {
		h, err := o.meter.Float64Histogram(spec.name, metric.WithDescription(spec.description), metric.WithUnit("ms"))
		if err != nil {
			return nil, fmt.Errorf("histogram %s: %w", spec.name, err)
		}
		o.histograms[spec.name] = h
	}
	return o, nil
}

// observeGauge registers a gauge read from fn at every collection.
func (o *otelInstruments) observeGauge(name, description string, fn func() int) error {
	_, err := o.meter.Int64ObservableGauge(name,
		metric.WithDescription(description),
		metric.WithInt64Callback(func(_ context.Context, obs metric.Int64Observer) error {
			obs.Observe(int64(fn()))
			return nil
		}),
	)
	return err
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.add(instHTTPRequests, attrs...)
	o.observe(instHTTPLatency, duration, attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	attr := attribute.String(AttrProvider, provider)
	o.add(instProviderAttempts, attr)
	o.observe(instProviderLatency, duration, attr)
	if err != nil {
		o.add(instProviderErrors, attr)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	attr := attribute.String(AttrProvider, provider)
	o.add(instRateLimitHits, attr)
	if retryAfter > 0 {
		o.observe(instRetryAfter, retryAfter, attr)
	}
}

func (o *otelInstruments) recordIngestItem(phase string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	o.add(instIngestItems, attribute.String(AttrPhase, phase), attribute.String(AttrOutcome, outcome))
}

func (o *otelInstruments) recordCronRun(job, trigger, status string, duration time.Duration) {
	jobAttr := attribute.String(AttrJob, job)
	o.add(instCronRuns, jobAttr, attribute.String(AttrTrigger, trigger), attribute.String(AttrStatus, status))
	o.observe(instCronLatency, duration, jobAttr)
}

func (o *otelInstruments) add(name string, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	if c, ok := o.counters[name]; ok {
		c.Add(o.ctx, 1, metric.WithAttributes(attrs...))
	}
}

func (o *otelInstruments) observe(name string, d time.Duration, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	if h, ok := o.histograms[name]; ok {
		h.Record(o.ctx, float64(d.Milliseconds()), metric.WithAttributes(attrs...))
	}
}
