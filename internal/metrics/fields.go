package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrPhase    = "phase"
	AttrOutcome  = "outcome"
	AttrJob      = "job"
	AttrTrigger  = "trigger"
)

// Ingest phases and outcomes.
const (
	PhaseFetch = "fetch"
	PhasePush  = "push"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
