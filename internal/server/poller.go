package server

import (
	"context"

	"github.com/preston-bernstein/trivia-admin-service/internal/poller"
)

// Poller is the background housekeeping loop the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Scheduler fires cron jobs in process.
type Scheduler interface {
	Start()
	Stop(ctx context.Context) error
}
