package ledger

// =============================================================================
// PERIOD - Time boundary for statements and summaries
// =============================================================================

// Period defines the inclusive [Start, End] boundary over which statements
// and summaries are computed.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod builds a period, rejecting end-before-start.
func NewPeriod(start, end TimePoint) (Period, error) {
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// Contains returns true if the time point is within [Start, End].
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
