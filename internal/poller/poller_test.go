package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/testutil"
)

func TestPollerRunsTaskOnInterval(t *testing.T) {
	var calls atomic.Int32
	ran := make(chan struct{}, 8)
	task := func(context.Context) (int, error) {
		calls.Add(1)
		ran <- struct{}{}
		return 2, nil
	}

	p := New("sweep", task, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	p.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for task")
		}
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	st := p.Status()
	if st.LastCount != 2 || st.LastSuccess.IsZero() || !st.Healthy() {
		t.Fatalf("unexpected status %+v", st)
	}
	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != after {
		t.Fatalf("expected no runs after stop")
	}
}

func TestPollerRecordsFailures(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := New("sweep", func(context.Context) (int, error) { return 0, errors.New("store down") }, logger, time.Hour)
	fixed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	for i := 0; i < 3; i++ {
		p.RunOnce(context.Background())
	}

	st := p.Status()
	if st.ConsecutiveFailures != 3 || st.LastError != "store down" || st.Healthy() {
		t.Fatalf("unexpected status %+v", st)
	}
	if !st.LastAttempt.Equal(fixed) || !st.LastSuccess.IsZero() {
		t.Fatalf("unexpected timestamps %+v", st)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected failures logged")
	}
}

func TestPollerStopBeforeStart(t *testing.T) {
	p := New("idle", func(context.Context) (int, error) { return 0, nil }, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval, got %v", p.interval)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("expected idempotent stop, got %v", err)
	}
}
