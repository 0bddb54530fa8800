/*
summary.go - Account summary aggregation

PURPOSE:
  Reduces a document set for one entity into invoiced / received / due
  totals. This is the number at the top of every customer and vendor
  screen, so there is exactly one implementation of it.

THE RECEIVED RULE:
  AmountReceived counts two sources:
    1. Payment records, at face value.
    2. The settled portion (amount - balance) of each invoice.
  A partially-paid invoice therefore contributes its settled portion even
  when no separate payment record exists. When BOTH a payment record and
  a reduced invoice balance represent the same cash event, the settlement
  is counted twice. That is the canonical rule here, applied uniformly at
  every call site; feeds that record settlements as payment documents
  must leave the invoice balance at face value (or omit it).

CREDIT POSITION:
  BalanceDue = opening + invoiced - received, with NO floor. A negative
  balance due signals an overpaid (credit) position and is preserved.
*/
package ledger

import "github.com/shopspring/decimal"

// =============================================================================
// BALANCE AGGREGATOR
// =============================================================================

// Aggregate reduces transactions into an AccountSummary. Pure: the input
// slice is not modified and repeated calls yield identical output. Empty
// input yields an all-zero summary (plus the opening balance).
func Aggregate(entityID EntityID, txs []Transaction, opening decimal.Decimal) AccountSummary {
	invoiced := decimal.Zero
	received := decimal.Zero

	for _, tx := range txs {
		switch tx.Kind {
		case KindInvoice:
			invoiced = invoiced.Add(tx.Amount)
			received = received.Add(tx.SettledAmount())
		case KindPayment:
			received = received.Add(tx.Amount)
		}
	}

	return AccountSummary{
		EntityID:       entityID,
		OpeningBalance: opening,
		InvoicedAmount: invoiced,
		AmountReceived: received,
		BalanceDue:     opening.Add(invoiced).Sub(received),
	}
}
