/*
scenarios.go - Demo data loaders

PURPOSE:
  Seeds the records store with recognizable demo books so the derivation
  endpoints have something to show. Each scenario resets the store and
  loads one self-contained data set.

SCENARIOS:
  retail-customer:  One customer, a mix of paid / partial / open invoices
                    and payment records - exercises every status rule.
  overdue-accounts: Invoices with due dates years in the past - exercises
                    overdue day counts.
  vendor-bills:     A vendor with bills and a credit note - exercises the
                    payable side of statements.
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/billing-engine/ledger"
)

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "retail-customer",
		Name:        "Retail Customer",
		Description: "A customer with paid, partially paid, and open invoices plus payments",
	},
	{
		ID:          "overdue-accounts",
		Name:        "Overdue Accounts",
		Description: "Invoices long past their due dates",
	},
	{
		ID:          "vendor-bills",
		Name:        "Vendor Bills",
		Description: "A vendor with bills and a credit note",
	},
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Loaded ID not in the list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:   h.currentScenario,
		Name: h.currentScenario,
	})
}

// LoadScenario resets the store and loads the selected scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset records", err)
		return
	}

	var err error
	switch req.ID {
	case "retail-customer":
		err = h.loadRetailCustomerScenario(ctx)
	case "overdue-accounts":
		err = h.loadOverdueAccountsScenario(ctx)
	case "vendor-bills":
		err = h.loadVendorBillsScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ID
	h.Log.Info().Str("scenario", req.ID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ID})
}

// ResetRecords clears the store.
func (h *Handler) ResetRecords(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset records", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadRetailCustomerScenario(ctx context.Context) error {
	if err := h.Store.SaveEntity(ctx, ledger.Entity{
		ID:    "cust-mehta",
		Name:  "Mehta Retail",
		Email: "billing@mehtaretail.example",
		Type:  ledger.EntityCustomer,
	}); err != nil {
		return err
	}

	docs := []ledger.Transaction{
		seedDoc("inv-1001", "cust-mehta", ledger.KindInvoice, "2025-01-05", "INV-1001", 25000, settled(0)),
		seedDoc("inv-1002", "cust-mehta", ledger.KindInvoice, "2025-01-18", "INV-1002", 140000, settled(60000)),
		seedDoc("inv-1003", "cust-mehta", ledger.KindInvoice, "2025-02-02", "INV-1003", 8500, nil),
		seedDoc("pay-2001", "cust-mehta", ledger.KindPayment, "2025-01-12", "PAY-2001", 25000, nil),
		seedDoc("pay-2002", "cust-mehta", ledger.KindPayment, "2025-01-25", "PAY-2002", 80000, nil),
	}
	return h.seedDocs(ctx, docs)
}

func (h *Handler) loadOverdueAccountsScenario(ctx context.Context) error {
	if err := h.Store.SaveEntity(ctx, ledger.Entity{
		ID:    "cust-slow",
		Name:  "Slow Payers Pvt Ltd",
		Email: "ap@slowpayers.example",
		Type:  ledger.EntityCustomer,
	}); err != nil {
		return err
	}

	old := seedDoc("inv-9001", "cust-slow", ledger.KindInvoice, "2020-01-01", "INV-9001", 100000, nil)
	old.DueDate = dueOn("2020-01-31")
	recent := seedDoc("inv-9002", "cust-slow", ledger.KindInvoice, "2025-01-15", "INV-9002", 45000, settled(15000))
	recent.DueDate = dueOn("2025-02-15")

	return h.seedDocs(ctx, []ledger.Transaction{old, recent})
}

func (h *Handler) loadVendorBillsScenario(ctx context.Context) error {
	if err := h.Store.SaveEntity(ctx, ledger.Entity{
		ID:             "vend-sharma",
		Name:           "Sharma Supplies",
		Email:          "accounts@sharma.example",
		Type:           ledger.EntityVendor,
		OpeningBalance: decimal.NewFromInt(5000),
	}); err != nil {
		return err
	}

	docs := []ledger.Transaction{
		seedDoc("bill-3001", "vend-sharma", ledger.KindBill, "2025-01-08", "BILL-3001", 32000, settled(0)),
		seedDoc("bill-3002", "vend-sharma", ledger.KindBill, "2025-02-10", "BILL-3002", 17500, nil),
		seedDoc("cn-4001", "vend-sharma", ledger.KindCreditNote, "2025-02-14", "CN-4001", 2500, nil),
		seedDoc("pay-5001", "vend-sharma", ledger.KindPayment, "2025-01-20", "PAY-5001", 32000, nil),
	}
	return h.seedDocs(ctx, docs)
}

func (h *Handler) seedDocs(ctx context.Context, docs []ledger.Transaction) error {
	for _, doc := range docs {
		if err := h.Store.SaveDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SEED HELPERS
// =============================================================================

// seedDoc builds a demo document. balance nil means fully unsettled.
func seedDoc(id, entityID string, kind ledger.Kind, dateStr, number string, amount float64, balance *float64) ledger.Transaction {
	date, _ := ledger.ParseDate(dateStr)
	return ledger.Transaction{
		ID:       ledger.TransactionID(id),
		EntityID: ledger.EntityID(entityID),
		Kind:     kind,
		Date:     date,
		Number:   number,
		Amount:   decimal.NewFromFloat(amount),
		Balance:  floatToNullDecimal(balance),
	}
}

func settled(remaining float64) *float64 {
	return &remaining
}

func dueOn(dateStr string) *ledger.TimePoint {
	due, _ := ledger.ParseDate(dateStr)
	return &due
}
