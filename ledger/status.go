/*
status.go - Payment status classification

PURPOSE:
  Maps a document's raw numeric fields (amount, balance, explicit status
  flag, due date) to the canonical Status enum. This is the single place
  status is derived; screens and the API never re-derive it ad hoc.

CLASSIFICATION RULES (ordered, first match wins):
  1. Explicit VOID flag          -> void (overrides everything)
  2. balance == 0 && amount > 0  -> paid
  3. 0 < balance < amount        -> partially_paid
  4. balance > 0 && due < now    -> overdue
  5. Stored status if present, else open

LENIENCY:
  Malformed numeric fields (negative where the data model forbids it)
  are defaulted to zero instead of raising. This is a documented policy
  for dirty upstream data, not silent bug tolerance: the Warn hook fires
  on every defaulting so callers can log it.
*/
package ledger

import "github.com/shopspring/decimal"

// =============================================================================
// CLASSIFIER
// =============================================================================

// WarnFunc receives a note whenever a malformed field is defaulted.
type WarnFunc func(id TransactionID, field, note string)

// Classifier derives payment status. The zero value is ready to use;
// set Warn to observe defaulting of malformed input.
type Classifier struct {
	Warn WarnFunc
}

// Classify maps one document to its canonical status. Total: it never
// panics and always returns a defined Status, whatever the input.
func (c Classifier) Classify(tx Transaction, now TimePoint) Status {
	amount := c.sanitize(tx.ID, "amount", tx.Amount)

	balance := amount // missing balance means fully unsettled
	if tx.Balance.Valid {
		balance = c.sanitize(tx.ID, "balance", tx.Balance.Decimal)
	}

	switch {
	case tx.ExplicitStatus == StatusVoid:
		return StatusVoid

	case balance.IsZero() && amount.IsPositive():
		return StatusPaid

	case balance.IsPositive() && balance.LessThan(amount):
		return StatusPartiallyPaid

	case balance.IsPositive() && tx.DueDate != nil && tx.DueDate.Before(now):
		return StatusOverdue

	case tx.ExplicitStatus != "":
		return tx.ExplicitStatus

	default:
		return StatusOpen
	}
}

// sanitize defaults malformed monetary values to zero. Documents carry
// monetary-positive amounts; a negative value here is upstream dirt.
func (c Classifier) sanitize(id TransactionID, field string, v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		if c.Warn != nil {
			c.Warn(id, field, "negative value defaulted to 0")
		}
		return decimal.Zero
	}
	return v
}

// Classify derives status with the default (silent) classifier.
func Classify(tx Transaction, now TimePoint) Status {
	return Classifier{}.Classify(tx, now)
}
