/*
statement.go - Statement ledger construction

PURPOSE:
  Merges an entity's document streams into a single chronologically
  ordered statement for a period. Each document becomes one row with
  debit/credit columns and its current outstanding balance.

ORDERING:
  Rows are sorted descending by date, newest first. Ties keep insertion
  order (stable sort), so two documents on the same date always render
  in the same relative order.

COLUMNS:
  Amount column:  face value for debit kinds (invoice, bill).
  Payment column: face value for credit-like kinds (payment, credit
                  note); for invoices, the settled portion when any
                  settlement has happened.
  A column that does not apply stays invalid and renders as missing.

RUNNING BALANCE:
  Taken directly from each record's own balance field. The statement
  shows every document's CURRENT outstanding amount, not a reconstructed
  historical running total. Preserved semantic; do not "fix".
*/
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATEMENT BUILDER
// =============================================================================

// BuildStatement filters transactions to the period (inclusive), orders
// them newest first, and projects each into a StatementLine. Zero
// transactions in the period yields an empty slice, never an error.
func BuildStatement(txs []Transaction, period Period) []StatementLine {
	var lines []StatementLine
	for _, tx := range txs {
		if !period.Contains(tx.Date) {
			continue
		}
		lines = append(lines, toLine(tx))
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date.After(lines[j].Date)
	})
	return lines
}

func toLine(tx Transaction) StatementLine {
	line := StatementLine{
		TransactionID:  tx.ID,
		Date:           tx.Date,
		Kind:           tx.Kind,
		Label:          label(tx),
		RunningBalance: tx.EffectiveBalance(),
	}

	if tx.Kind.Debit() {
		line.Amount = decimal.NullDecimal{Decimal: tx.Amount, Valid: true}
		// Only invoices surface their settled portion here. Bill
		// settlements arrive as separate payment documents, which get
		// their own rows.
		if tx.Kind == KindInvoice {
			if settled := tx.SettledAmount(); settled.IsPositive() {
				line.Payment = decimal.NullDecimal{Decimal: settled, Valid: true}
			}
		}
	} else {
		line.Payment = decimal.NullDecimal{Decimal: tx.Amount, Valid: true}
	}
	return line
}

func label(tx Transaction) string {
	if tx.Number == "" {
		return tx.Kind.DisplayName()
	}
	return tx.Kind.DisplayName() + " " + tx.Number
}
