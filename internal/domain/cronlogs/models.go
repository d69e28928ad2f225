package cronlogs

import (
	"encoding/json"
	"time"
)

// Status of a job run.
type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Trigger records what started a run.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// Entry is one recorded job run.
type Entry struct {
	ID          string          `json:"id"`
	JobName     string          `json:"jobName"`
	Status      Status          `json:"status"`
	TriggeredBy Trigger         `json:"triggeredBy"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	DurationMS  int64           `json:"durationMs"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
}
