package jobs

import (
	"context"
	"time"
)

// PruneName is the registered name of the cron log cleanup job.
const PruneName = "prune-cron-logs"

// PruneStore deletes old cron log entries.
type PruneStore interface {
	PruneCronRuns(ctx context.Context, before time.Time) (int, error)
}

// PruneResult is stored as the run's result payload.
type PruneResult struct {
	Deleted int       `json:"deleted"`
	Before  time.Time `json:"before"`
}

// PruneCronLogs deletes finished runs older than retention.
func PruneCronLogs(store PruneStore, schedule string, retention time.Duration, now func() time.Time) Job {
	if now == nil {
		now = time.Now
	}
	return Job{
		Name:     PruneName,
		Schedule: schedule,
		Run: func(ctx context.Context) (any, error) {
			before := now().Add(-retention)
			n, err := store.PruneCronRuns(ctx, before)
			if err != nil {
				return nil, err
			}
			return PruneResult{Deleted: n, Before: before}, nil
		},
	}
}
