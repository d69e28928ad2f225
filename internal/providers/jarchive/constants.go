package jarchive

import "time"

const (
	defaultBaseURL     = "https://j-archive.com"
	defaultUserAgent   = "trivia-admin-service/1.0"
	defaultHTTPTimeout = 20 * time.Second

	seasonPath = "/showseason.php"
	gamePath   = "/showgame.php"

	// Name identifies this provider in logs and metrics.
	Name = "jarchive"

	idPrefix = "jarchive-"

	// Season 1 premiered in September 1984.
	firstSeasonYear = 1984
	seasonStartMon  = 9
)
