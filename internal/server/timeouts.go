package server

import "time"

const (
	readTimeout = 10 * time.Second
	// writeTimeout covers synchronous cron triggers; hijacked stream
	// connections manage their own deadlines.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 60 * time.Second
	// jobTimeout bounds one scheduled job run.
	jobTimeout = 90 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
