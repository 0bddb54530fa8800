package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/billing-engine/ledger"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// Shared by the other _test.go files in this package.

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func someBalance(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

func date(y int, m time.Month, d int) ledger.TimePoint {
	return ledger.NewTimePoint(y, m, d)
}

func datePtr(y int, m time.Month, d int) *ledger.TimePoint {
	tp := ledger.NewTimePoint(y, m, d)
	return &tp
}

func invoice(id string, amount float64, balance decimal.NullDecimal) ledger.Transaction {
	return ledger.Transaction{
		ID:       ledger.TransactionID(id),
		EntityID: "cust-1",
		Kind:     ledger.KindInvoice,
		Date:     date(2025, time.January, 5),
		Number:   "INV-" + id,
		Amount:   money(amount),
		Balance:  balance,
	}
}

func payment(id string, amount float64) ledger.Transaction {
	return ledger.Transaction{
		ID:       ledger.TransactionID(id),
		EntityID: "cust-1",
		Kind:     ledger.KindPayment,
		Date:     date(2025, time.January, 20),
		Number:   "PAY-" + id,
		Amount:   money(amount),
	}
}

// =============================================================================
// CLASSIFICATION TESTS
// =============================================================================

func TestClassify_ZeroBalancePositiveAmount_Paid(t *testing.T) {
	// GIVEN: Invoice of 1000 with nothing outstanding, stored status "open"
	// WHEN: Classifying
	// THEN: Derived status is paid; the stored flag does not win

	tx := invoice("1", 1000, someBalance(0))
	tx.ExplicitStatus = ledger.StatusOpen

	got := ledger.Classify(tx, ledger.Now())
	if got != ledger.StatusPaid {
		t.Errorf("expected paid, got %s", got)
	}
}

func TestClassify_BalanceBetweenZeroAndAmount_PartiallyPaid(t *testing.T) {
	tx := invoice("1", 1000, someBalance(400))

	got := ledger.Classify(tx, ledger.Now())
	if got != ledger.StatusPartiallyPaid {
		t.Errorf("expected partially_paid, got %s", got)
	}
}

func TestClassify_VoidFlag_OverridesEverything(t *testing.T) {
	// GIVEN: A fully settled invoice that was voided
	// WHEN: Classifying
	// THEN: void wins over paid

	tx := invoice("1", 1000, someBalance(0))
	tx.ExplicitStatus = ledger.StatusVoid

	got := ledger.Classify(tx, ledger.Now())
	if got != ledger.StatusVoid {
		t.Errorf("expected void, got %s", got)
	}
}

func TestClassify_PastDueWithBalance_Overdue(t *testing.T) {
	// GIVEN: Fully unsettled invoice due 2020-01-01
	// WHEN: Classifying with now = 2025-01-01
	// THEN: overdue (partial settlement would classify partially_paid first)

	tx := invoice("1", 1000, someBalance(1000))
	tx.DueDate = datePtr(2020, time.January, 1)
	now := date(2025, time.January, 1)

	got := ledger.Classify(tx, now)
	if got != ledger.StatusOverdue {
		t.Errorf("expected overdue, got %s", got)
	}
}

func TestClassify_MissingDueDate_NotOverdue(t *testing.T) {
	tx := invoice("1", 1000, someBalance(1000))

	got := ledger.Classify(tx, ledger.Now())
	if got != ledger.StatusOpen {
		t.Errorf("expected open, got %s", got)
	}
}

func TestClassify_MissingBalance_TreatedAsFullyUnsettled(t *testing.T) {
	// GIVEN: Invoice with no recorded balance
	// WHEN: Classifying
	// THEN: Not paid - a missing balance means nothing was settled

	tx := invoice("1", 1000, decimal.NullDecimal{})

	got := ledger.Classify(tx, ledger.Now())
	if got == ledger.StatusPaid || got == ledger.StatusPartiallyPaid {
		t.Errorf("missing balance must read as unsettled, got %s", got)
	}
}

func TestClassify_StoredStatusFallback(t *testing.T) {
	// Zero-amount record with a stored status: none of the numeric rules
	// fire, the stored flag passes through.
	tx := invoice("1", 0, someBalance(0))
	tx.ExplicitStatus = "draft"

	got := ledger.Classify(tx, ledger.Now())
	if got != ledger.Status("draft") {
		t.Errorf("expected stored status passthrough, got %s", got)
	}
}

func TestClassify_NoSignals_Open(t *testing.T) {
	tx := invoice("1", 0, someBalance(0))

	got := ledger.Classify(tx, ledger.Now())
	if got != ledger.StatusOpen {
		t.Errorf("expected open, got %s", got)
	}
}

func TestClassify_MalformedInput_NeverPanics(t *testing.T) {
	// GIVEN: A record with negative amount and no balance
	// WHEN: Classifying with a warn hook installed
	// THEN: A defined status comes back and the hook observed the defaulting

	var warned []string
	c := ledger.Classifier{
		Warn: func(id ledger.TransactionID, field, note string) {
			warned = append(warned, field)
		},
	}

	tx := invoice("1", -500, decimal.NullDecimal{})
	got := c.Classify(tx, ledger.Now())

	if got == "" {
		t.Fatal("classify must always return a defined status")
	}
	if len(warned) == 0 {
		t.Error("expected warn hook to fire for negative amount")
	}
}

func TestClassify_Idempotent(t *testing.T) {
	tx := invoice("1", 1000, someBalance(400))
	now := ledger.Now()

	first := ledger.Classify(tx, now)
	second := ledger.Classify(tx, now)
	if first != second {
		t.Errorf("classification not deterministic: %s vs %s", first, second)
	}
}
