/*
Package ledger provides the derived financial-state computation core.

PURPOSE:
  This package contains the pure derivation layer of the billing engine.
  Given raw document records (invoices, bills, payments, credit notes) for
  an entity, it computes derived financial facts: payment status, overdue
  state, account summaries, and period-scoped statement ledgers.

KEY CONCEPTS IN THIS FILE (types.go):
  - Transaction: An immutable document record (invoice, bill, payment, ...)
  - Kind: Discriminates document kinds (tagged variant, not duck typing)
  - Status: Canonical payment status enum (derived, never stored back)
  - Entity: A customer or vendor against which documents are recorded
  - AccountSummary / StatementLine: The derived outputs

DESIGN PRINCIPLES:
  1. Purity: Every derivation is a side-effect-free function of its input.
     Derived values are recomputed fresh on every read; there is no cache
     and therefore no invalidation problem.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors.
     Rounding happens only at formatting time, never mid-computation.
  3. Leniency: Malformed numeric fields default to zero instead of
     raising. A warning hook is the observability point for defaulting.
  4. Explicit missing values: Absent balance is decimal.NullDecimal,
     absent due date is a nil *TimePoint. No ad hoc zero-vs-missing
     ambiguity at call sites.

SEE ALSO:
  - status.go: Status classification rules
  - summary.go: Account summary aggregation
  - statement.go: Statement ledger construction
  - store.go: Records store interface
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EntityID string
type TransactionID string

// =============================================================================
// DOCUMENT KIND - Tagged variant per document kind
// =============================================================================

// Kind discriminates the document kinds flowing through the derivation
// layer. Records are validated to one of these at the store boundary;
// nothing downstream inspects loose shapes.
type Kind string

const (
	KindInvoice    Kind = "invoice"
	KindBill       Kind = "bill"
	KindPayment    Kind = "payment"
	KindCreditNote Kind = "credit_note"
)

// Kinds lists all document kinds. The order is the fan-out order used
// when fetching per-kind collections.
func Kinds() []Kind {
	return []Kind{KindInvoice, KindBill, KindPayment, KindCreditNote}
}

// ValidKind reports whether k is a known document kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindInvoice, KindBill, KindPayment, KindCreditNote:
		return true
	}
	return false
}

// DisplayName returns the human label used on statements.
func (k Kind) DisplayName() string {
	switch k {
	case KindInvoice:
		return "Invoice"
	case KindBill:
		return "Bill"
	case KindPayment:
		return "Payment"
	case KindCreditNote:
		return "Credit Note"
	default:
		return string(k)
	}
}

// Debit reports whether the kind contributes to the statement's amount
// (debit) column. Invoices and bills are debits; payments and credit
// notes are credit-like.
func (k Kind) Debit() bool {
	return k == KindInvoice || k == KindBill
}

// =============================================================================
// STATUS - Canonical payment status (derived, never persisted as truth)
// =============================================================================

type Status string

const (
	StatusPaid          Status = "paid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusOpen          Status = "open"
	StatusOverdue       Status = "overdue"
	StatusVoid          Status = "void"
)

// =============================================================================
// TRANSACTION - Immutable document record
// =============================================================================

// Transaction is one document record as fetched from the records store.
// Amount is the face value; Balance is the remaining unsettled amount
// (zero for fully settled, equal to Amount for untouched).
//
// Missing values are explicit:
//   - Balance.Valid == false means "no balance recorded", which the
//     derivation layer treats as fully unsettled (balance == amount).
//   - DueDate == nil means "no due date", which can never be overdue.
type Transaction struct {
	ID              TransactionID
	EntityID        EntityID
	Kind            Kind
	Date            TimePoint
	DueDate         *TimePoint
	Number          string
	ReferenceNumber string
	Amount          decimal.Decimal
	Balance         decimal.NullDecimal
	ExplicitStatus  Status
}

// EffectiveBalance resolves the missing-balance sentinel: a record with
// no recorded balance is fully unsettled.
func (t Transaction) EffectiveBalance() decimal.Decimal {
	if t.Balance.Valid {
		return t.Balance.Decimal
	}
	return t.Amount
}

// SettledAmount returns the portion of the face value already settled
// (amount - balance). Never negative.
func (t Transaction) SettledAmount() decimal.Decimal {
	settled := t.Amount.Sub(t.EffectiveBalance())
	if settled.IsNegative() {
		return decimal.Zero
	}
	return settled
}

// =============================================================================
// ENTITY - Customer or vendor
// =============================================================================

type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntityVendor   EntityType = "vendor"
)

type Entity struct {
	ID             EntityID
	Name           string
	Email          string
	Type           EntityType
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
}

// =============================================================================
// DERIVED OUTPUTS
// =============================================================================

// AccountSummary is the per-entity aggregate over a document set.
//
// INVARIANT: BalanceDue == OpeningBalance + InvoicedAmount - AmountReceived,
// exactly, in decimal arithmetic. BalanceDue may be negative: an overpaid
// account is a credit position, intentionally not clamped.
type AccountSummary struct {
	EntityID       EntityID
	OpeningBalance decimal.Decimal
	InvoicedAmount decimal.Decimal
	AmountReceived decimal.Decimal
	BalanceDue     decimal.Decimal
}

// StatementLine is a Transaction projected into a single ledger row.
// Amount and Payment carry the debit/credit columns; a column that does
// not apply to the kind is left invalid and rendered as missing.
//
// RunningBalance is the record's own current balance, not a recomputed
// historical running total. The statement shows each document's present
// outstanding amount; this is a preserved semantic of the system.
type StatementLine struct {
	TransactionID  TransactionID
	Date           TimePoint
	Kind           Kind
	Label          string
	Amount         decimal.NullDecimal
	Payment        decimal.NullDecimal
	RunningBalance decimal.Decimal
}
