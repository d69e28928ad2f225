package questions

// ResolveRound returns the explicit round when set, otherwise falls back to
// the legacy boolean flags, otherwise single.
func ResolveRound(q QuestionRecord) Round {
	if q.Round.Valid() {
		return q.Round
	}
	if q.IsFinalJeopardy != nil && *q.IsFinalJeopardy {
		return RoundFinal
	}
	if q.IsDoubleJeopardy != nil && *q.IsDoubleJeopardy {
		return RoundDouble
	}
	return RoundSingle
}

// Normalize fills Round from the legacy flags and drops them.
func Normalize(q QuestionRecord) QuestionRecord {
	q.Round = ResolveRound(q)
	q.IsDoubleJeopardy = nil
	q.IsFinalJeopardy = nil
	return q
}
