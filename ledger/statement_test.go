package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/billing-engine/ledger"
)

func january2025() ledger.Period {
	return ledger.Period{
		Start: date(2025, time.January, 1),
		End:   date(2025, time.January, 31),
	}
}

func TestBuildStatement_SortsDescendingByDate(t *testing.T) {
	// GIVEN: Two invoices dated Jan 5 and Jan 10
	// WHEN: Building the January statement
	// THEN: Jan 10 renders first (newest first)

	early := invoice("1", 1000, decimal.NullDecimal{})
	early.Date = date(2025, time.January, 5)
	late := invoice("2", 2000, decimal.NullDecimal{})
	late.Date = date(2025, time.January, 10)

	lines := ledger.BuildStatement([]ledger.Transaction{early, late}, january2025())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].TransactionID != "2" || lines[1].TransactionID != "1" {
		t.Errorf("expected newest first, got %s then %s", lines[0].TransactionID, lines[1].TransactionID)
	}
}

func TestBuildStatement_SameDate_KeepsInsertionOrder(t *testing.T) {
	// Stable sort: ties on date must preserve input order so repeated
	// renders are byte-identical.

	var txs []ledger.Transaction
	for _, id := range []string{"a", "b", "c"} {
		tx := invoice(id, 100, decimal.NullDecimal{})
		tx.Date = date(2025, time.January, 15)
		txs = append(txs, tx)
	}

	lines := ledger.BuildStatement(txs, january2025())

	for i, want := range []ledger.TransactionID{"a", "b", "c"} {
		if lines[i].TransactionID != want {
			t.Errorf("line %d: expected %s, got %s", i, want, lines[i].TransactionID)
		}
	}
}

func TestBuildStatement_PeriodBoundariesInclusive(t *testing.T) {
	onStart := invoice("1", 100, decimal.NullDecimal{})
	onStart.Date = date(2025, time.January, 1)
	onEnd := invoice("2", 100, decimal.NullDecimal{})
	onEnd.Date = date(2025, time.January, 31)
	outside := invoice("3", 100, decimal.NullDecimal{})
	outside.Date = date(2025, time.February, 1)

	lines := ledger.BuildStatement([]ledger.Transaction{onStart, onEnd, outside}, january2025())

	if len(lines) != 2 {
		t.Fatalf("expected boundary dates included and Feb excluded, got %d lines", len(lines))
	}
}

func TestBuildStatement_EmptyPeriod_EmptySequence(t *testing.T) {
	tx := invoice("1", 100, decimal.NullDecimal{})
	tx.Date = date(2024, time.June, 1)

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	if len(lines) != 0 {
		t.Errorf("expected empty statement, got %d lines", len(lines))
	}
}

func TestBuildStatement_InvoiceColumns(t *testing.T) {
	// GIVEN: A partially settled invoice (1000 face, 400 outstanding)
	// WHEN: Building the statement
	// THEN: Amount column 1000, payment column 600, running balance 400

	tx := invoice("1", 1000, someBalance(400))
	tx.Date = date(2025, time.January, 10)

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	line := lines[0]
	if !line.Amount.Valid || !line.Amount.Decimal.Equal(money(1000)) {
		t.Errorf("expected amount column 1000, got %+v", line.Amount)
	}
	if !line.Payment.Valid || !line.Payment.Decimal.Equal(money(600)) {
		t.Errorf("expected payment column 600, got %+v", line.Payment)
	}
	if !line.RunningBalance.Equal(money(400)) {
		t.Errorf("expected running balance 400, got %v", line.RunningBalance)
	}
}

func TestBuildStatement_UntouchedInvoice_NoPaymentColumn(t *testing.T) {
	tx := invoice("1", 1000, decimal.NullDecimal{})
	tx.Date = date(2025, time.January, 10)

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	if lines[0].Payment.Valid {
		t.Errorf("expected missing payment column, got %v", lines[0].Payment.Decimal)
	}
}

func TestBuildStatement_PaymentColumns(t *testing.T) {
	tx := payment("1", 500)
	tx.Date = date(2025, time.January, 20)

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	line := lines[0]
	if line.Amount.Valid {
		t.Errorf("payment must not fill the debit column, got %v", line.Amount.Decimal)
	}
	if !line.Payment.Valid || !line.Payment.Decimal.Equal(money(500)) {
		t.Errorf("expected payment column 500, got %+v", line.Payment)
	}
}

func TestBuildStatement_BillColumns_NoSettledPortion(t *testing.T) {
	// GIVEN: A partially settled bill (32000 face, 12000 outstanding)
	// WHEN: Building the statement
	// THEN: Amount column fills, but the payment column stays empty;
	//       bill settlements show up as their own payment rows

	tx := invoice("1", 32000, someBalance(12000))
	tx.Kind = ledger.KindBill
	tx.Date = date(2025, time.January, 8)

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	line := lines[0]
	if !line.Amount.Valid || !line.Amount.Decimal.Equal(money(32000)) {
		t.Errorf("expected amount column 32000, got %+v", line.Amount)
	}
	if line.Payment.Valid {
		t.Errorf("bill must not surface a settled portion, got %v", line.Payment.Decimal)
	}
	if !line.RunningBalance.Equal(money(12000)) {
		t.Errorf("expected running balance 12000, got %v", line.RunningBalance)
	}
}

func TestBuildStatement_CreditNoteColumns(t *testing.T) {
	tx := payment("1", 2500)
	tx.Kind = ledger.KindCreditNote
	tx.Number = "CN-4001"

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	line := lines[0]
	if line.Amount.Valid {
		t.Errorf("credit note must not fill the debit column, got %v", line.Amount.Decimal)
	}
	if !line.Payment.Valid || !line.Payment.Decimal.Equal(money(2500)) {
		t.Errorf("expected payment column 2500, got %+v", line.Payment)
	}
	if line.Label != "Credit Note CN-4001" {
		t.Errorf("expected label 'Credit Note CN-4001', got %q", line.Label)
	}
}

func TestBuildStatement_RunningBalanceIsRecordBalance(t *testing.T) {
	// The running balance column is each record's own current balance,
	// not a reconstructed chronological total. Preserved semantic.

	first := invoice("1", 1000, someBalance(1000))
	first.Date = date(2025, time.January, 5)
	second := invoice("2", 500, someBalance(200))
	second.Date = date(2025, time.January, 10)

	lines := ledger.BuildStatement([]ledger.Transaction{first, second}, january2025())

	if !lines[0].RunningBalance.Equal(money(200)) {
		t.Errorf("expected line balance 200, got %v", lines[0].RunningBalance)
	}
	if !lines[1].RunningBalance.Equal(money(1000)) {
		t.Errorf("expected line balance 1000, got %v", lines[1].RunningBalance)
	}
}

func TestBuildStatement_Labels(t *testing.T) {
	tx := invoice("1", 1000, decimal.NullDecimal{})
	tx.Date = date(2025, time.January, 10)
	tx.Number = "INV-007"

	lines := ledger.BuildStatement([]ledger.Transaction{tx}, january2025())

	if lines[0].Label != "Invoice INV-007" {
		t.Errorf("expected label 'Invoice INV-007', got %q", lines[0].Label)
	}
}

func TestBuildStatement_Idempotent(t *testing.T) {
	txs := []ledger.Transaction{
		invoice("1", 1000, someBalance(400)),
		payment("2", 250),
	}
	txs[0].Date = date(2025, time.January, 5)
	txs[1].Date = date(2025, time.January, 5)

	first := ledger.BuildStatement(txs, january2025())
	second := ledger.BuildStatement(txs, january2025())

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].TransactionID != second[i].TransactionID {
			t.Errorf("line %d differs across runs", i)
		}
	}
}
