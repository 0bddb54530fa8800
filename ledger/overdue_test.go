package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/billing-engine/ledger"
)

func TestOverdue_FiveYearsPastDue_DayCount(t *testing.T) {
	// GIVEN: Invoice with balance 400, due 2020-01-01
	// WHEN: Evaluated mid-day on 2025-01-01
	// THEN: Overdue by 1827 days (1826 whole days elapsed + partial day, ceiling)

	tx := invoice("1", 1000, someBalance(400))
	tx.DueDate = datePtr(2020, time.January, 1)
	now := ledger.At(time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC))

	got := ledger.Overdue(tx, now)
	if !got.Overdue {
		t.Fatal("expected overdue")
	}
	if got.DaysOverdue != 1827 {
		t.Errorf("expected 1827 days overdue, got %d", got.DaysOverdue)
	}
}

func TestOverdue_OneMillisecondPastDue_OneDay(t *testing.T) {
	// The day-count convention: any time past due counts as a full day.

	tx := invoice("1", 1000, someBalance(1000))
	tx.DueDate = datePtr(2025, time.March, 10)
	now := ledger.At(time.Date(2025, time.March, 10, 0, 0, 0, int(time.Millisecond), time.UTC))

	got := ledger.Overdue(tx, now)
	if !got.Overdue {
		t.Fatal("expected overdue")
	}
	if got.DaysOverdue != 1 {
		t.Errorf("expected 1 day overdue, got %d", got.DaysOverdue)
	}
}

func TestOverdue_NotYetDue(t *testing.T) {
	tx := invoice("1", 1000, someBalance(1000))
	tx.DueDate = datePtr(2025, time.June, 1)
	now := date(2025, time.March, 1)

	got := ledger.Overdue(tx, now)
	if got.Overdue || got.DaysOverdue != 0 {
		t.Errorf("expected not overdue, got %+v", got)
	}
}

func TestOverdue_MissingDueDate_NeverOverdue(t *testing.T) {
	tx := invoice("1", 1000, someBalance(1000))

	got := ledger.Overdue(tx, ledger.Now())
	if got.Overdue {
		t.Error("missing due date cannot be overdue")
	}
}

func TestOverdue_SettledBalance_NotOverdue(t *testing.T) {
	tx := invoice("1", 1000, someBalance(0))
	tx.DueDate = datePtr(2020, time.January, 1)

	got := ledger.Overdue(tx, ledger.Now())
	if got.Overdue {
		t.Error("settled document cannot be overdue")
	}
}

func TestOverdue_VoidDocument_NotOverdue(t *testing.T) {
	tx := invoice("1", 1000, decimal.NullDecimal{})
	tx.DueDate = datePtr(2020, time.January, 1)
	tx.ExplicitStatus = ledger.StatusVoid

	got := ledger.Overdue(tx, ledger.Now())
	if got.Overdue {
		t.Error("void document cannot be overdue")
	}
}
