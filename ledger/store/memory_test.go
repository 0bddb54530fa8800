package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/billing-engine/ledger"
	"github.com/warp/billing-engine/ledger/store"
)

func seedEntity(t *testing.T, m *store.Memory, id string) {
	t.Helper()
	require.NoError(t, m.SaveEntity(context.Background(), ledger.Entity{
		ID:   ledger.EntityID(id),
		Name: "Test",
		Type: ledger.EntityCustomer,
	}))
}

func memDoc(id string, kind ledger.Kind, date ledger.TimePoint) ledger.Transaction {
	return ledger.Transaction{
		ID:       ledger.TransactionID(id),
		EntityID: "cust-1",
		Kind:     kind,
		Date:     date,
		Amount:   decimal.NewFromInt(100),
	}
}

func TestMemory_OrderingMatchesSQLiteContract(t *testing.T) {
	// Date ascending, insertion order within a date - the ordering the
	// statement builder's stable sort depends on.
	m := store.NewMemory()
	ctx := context.Background()
	seedEntity(t, m, "cust-1")

	day := ledger.NewTimePoint(2025, time.January, 10)
	require.NoError(t, m.SaveDocument(ctx, memDoc("late", ledger.KindInvoice, day.AddDays(5))))
	require.NoError(t, m.SaveDocument(ctx, memDoc("tie-1", ledger.KindInvoice, day)))
	require.NoError(t, m.SaveDocument(ctx, memDoc("tie-2", ledger.KindInvoice, day)))

	docs, err := m.DocumentsByEntity(ctx, "cust-1", ledger.KindInvoice)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, ledger.TransactionID("tie-1"), docs[0].ID)
	assert.Equal(t, ledger.TransactionID("tie-2"), docs[1].ID)
	assert.Equal(t, ledger.TransactionID("late"), docs[2].ID)
}

func TestMemory_SaveDocument_Validation(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	seedEntity(t, m, "cust-1")

	tx := memDoc("doc-1", ledger.KindInvoice, ledger.NewTimePoint(2025, time.January, 10))
	require.NoError(t, m.SaveDocument(ctx, tx))
	assert.ErrorIs(t, m.SaveDocument(ctx, tx), ledger.ErrDuplicateID)

	ghost := memDoc("doc-2", ledger.KindInvoice, ledger.NewTimePoint(2025, time.January, 10))
	ghost.EntityID = "ghost"
	assert.ErrorIs(t, m.SaveDocument(ctx, ghost), ledger.ErrEntityNotFound)

	bad := memDoc("doc-3", ledger.Kind("estimate"), ledger.NewTimePoint(2025, time.January, 10))
	assert.ErrorIs(t, m.SaveDocument(ctx, bad), ledger.ErrInvalidKind)
}

func TestMemory_VoidAndRange(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	seedEntity(t, m, "cust-1")

	require.NoError(t, m.SaveDocument(ctx, memDoc("doc-1", ledger.KindInvoice, ledger.NewTimePoint(2025, time.January, 10))))
	require.NoError(t, m.SaveDocument(ctx, memDoc("doc-2", ledger.KindInvoice, ledger.NewTimePoint(2025, time.March, 10))))

	require.NoError(t, m.VoidDocument(ctx, "doc-1"))
	got, err := m.Document(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusVoid, got.ExplicitStatus)

	period := ledger.Period{
		Start: ledger.NewTimePoint(2025, time.January, 1),
		End:   ledger.NewTimePoint(2025, time.January, 31),
	}
	docs, err := m.DocumentsInRange(ctx, "cust-1", period)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
