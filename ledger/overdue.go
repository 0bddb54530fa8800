package ledger

import "math"

// =============================================================================
// OVERDUE EVALUATOR
// =============================================================================

// OverdueResult reports whether a document is overdue and by how many days.
type OverdueResult struct {
	Overdue     bool
	DaysOverdue int
}

// Overdue evaluates a document against "now".
//
// A document is overdue iff its balance is positive, it has a due date in
// the past, and it is not void. A missing due date can never be overdue.
//
// DaysOverdue is the ceiling of elapsed time in whole days: one
// millisecond past due counts as one day overdue. The same convention is
// applied everywhere day counts appear.
func Overdue(tx Transaction, now TimePoint) OverdueResult {
	if tx.ExplicitStatus == StatusVoid || tx.DueDate == nil {
		return OverdueResult{}
	}
	if !tx.EffectiveBalance().IsPositive() || !tx.DueDate.Before(now) {
		return OverdueResult{}
	}

	elapsed := now.Time.Sub(tx.DueDate.Time)
	days := int(math.Ceil(elapsed.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return OverdueResult{Overdue: true, DaysOverdue: days}
}
