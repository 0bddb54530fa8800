package ledger

import "time"

// =============================================================================
// TIME POINT - Thin time abstraction for document dates
// =============================================================================

// TimePoint wraps time.Time for document and due dates. Comparisons keep
// full precision: overdue evaluation counts a record one millisecond past
// its due date as overdue.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func At(t time.Time) TimePoint { return TimePoint{Time: t} }

func Now() TimePoint { return TimePoint{Time: time.Now().UTC()} }

// ParseDate parses an ISO date (YYYY-MM-DD) into a day-anchored TimePoint.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TimePoint{}, err
	}
	return TimePoint{Time: t}, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, n, 0)} }

// Properties
func (tp TimePoint) IsZero() bool { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.Time.Format("2006-01-02") }
