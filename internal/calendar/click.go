package calendar

// Action is what selecting a calendar day should do.
type Action string

const (
	// ActionNone: future days are inert.
	ActionNone Action = "none"
	// ActionLoadDate shows the stored questions for the day.
	ActionLoadDate Action = "load"
	// ActionFetchDate opens a single-date fetch and review flow.
	ActionFetchDate Action = "fetch"
)

// Decide maps a click on date to an action.
func Decide(date, today string, filled DateSet) Action {
	switch Classify(date, today, filled) {
	case StatusFuture:
		return ActionNone
	case StatusHasData:
		return ActionLoadDate
	default:
		return ActionFetchDate
	}
}
