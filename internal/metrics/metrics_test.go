package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("jarchive", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("jarchive", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("jarchive"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("jarchive"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("jarchive"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("jarchive")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("jarchive", 5*time.Second)
	rec.RecordRateLimit("jarchive", 0)

	if got := rec.RateLimitHits("jarchive"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("jarchive"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksIngestItems(t *testing.T) {
	rec := NewRecorder()
	rec.RecordIngestItem(PhaseFetch, nil)
	rec.RecordIngestItem(PhaseFetch, errors.New("no game"))
	rec.RecordIngestItem(PhasePush, nil)

	ok, failed := rec.IngestCounts(PhaseFetch)
	if ok != 1 || failed != 1 {
		t.Fatalf("expected 1/1 fetch items, got %d/%d", ok, failed)
	}
	if ok, failed := rec.IngestCounts(PhasePush); ok != 1 || failed != 0 {
		t.Fatalf("expected 1/0 push items, got %d/%d", ok, failed)
	}
}

func TestRecorderTracksCronRuns(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCronRun("daily-report", "scheduled", "SUCCESS", time.Second)
	rec.RecordCronRun("daily-report", "manual", "FAILED", 2*time.Second)

	snap := rec.CronSnapshot("daily-report")
	if snap.Runs != 2 || snap.Failures != 1 {
		t.Fatalf("unexpected cron snapshot %+v", snap)
	}
	if snap.LastStatus != "FAILED" || snap.LastDuration != 2*time.Second {
		t.Fatalf("expected last run recorded, got %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("jarchive", time.Millisecond, nil)
	rec.RecordIngestItem(PhasePush, nil)
	rec.RecordCronRun("job", "manual", "SUCCESS", 0)
	rec.RecordHTTPRequest("GET", "/health", 200, 0)
	if rec.ProviderCalls("jarchive") != 0 {
		t.Fatal("expected zero calls on nil recorder")
	}
}
