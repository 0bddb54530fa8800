/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the derivation layer's decimal-based model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY IN JSON:
  Numeric fields are float64 for client convenience; every monetary field
  is paired with a formatted string (₹, lakh/crore grouping) so the
  rendering layer never re-formats. Decimal precision lives server-side.

SEE ALSO:
  - handlers.go: Uses these types
  - format: Display formatting rules
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/billing-engine/format"
	"github.com/warp/billing-engine/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EntityDTO represents a customer or vendor in API responses.
type EntityDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	Type           string  `json:"type"`
	OpeningBalance float64 `json:"opening_balance"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// CreateEntityRequest is the request to create a customer or vendor.
type CreateEntityRequest struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Type           string  `json:"type"`
	OpeningBalance float64 `json:"opening_balance"`
}

// DocumentDTO represents a document with its derived status.
type DocumentDTO struct {
	ID              string   `json:"id"`
	EntityID        string   `json:"entity_id"`
	Kind            string   `json:"kind"`
	Date            string   `json:"date"`
	DueDate         string   `json:"due_date,omitempty"`
	Number          string   `json:"number,omitempty"`
	ReferenceNumber string   `json:"reference_number,omitempty"`
	Amount          float64  `json:"amount"`
	Balance         *float64 `json:"balance,omitempty"`
	Status          string   `json:"status"`
	Overdue         bool     `json:"overdue"`
	DaysOverdue     int      `json:"days_overdue,omitempty"`
	AmountDisplay   string   `json:"amount_display"`
}

// CreateDocumentRequest is the request to record a document.
type CreateDocumentRequest struct {
	ID              string   `json:"id,omitempty"` // server-assigned when empty
	EntityID        string   `json:"entity_id"`
	Kind            string   `json:"kind"`
	Date            string   `json:"date"`               // YYYY-MM-DD
	DueDate         string   `json:"due_date,omitempty"` // YYYY-MM-DD
	Number          string   `json:"number"`
	ReferenceNumber string   `json:"reference_number,omitempty"`
	Amount          float64  `json:"amount"`
	Balance         *float64 `json:"balance,omitempty"` // absent = fully unsettled
	Status          string   `json:"status,omitempty"`
}

// SummaryDTO is the per-entity account summary for a period.
type SummaryDTO struct {
	EntityID        string  `json:"entity_id"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	OpeningBalance  float64 `json:"opening_balance"`
	InvoicedAmount  float64 `json:"invoiced_amount"`
	AmountReceived  float64 `json:"amount_received"`
	BalanceDue      float64 `json:"balance_due"`
	InvoicedDisplay string  `json:"invoiced_display"`
	ReceivedDisplay string  `json:"received_display"`
	DueDisplay      string  `json:"due_display"`
}

// StatementDTO is the period-scoped ledger for an entity.
type StatementDTO struct {
	EntityID   string             `json:"entity_id"`
	EntityName string             `json:"entity_name"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Lines      []StatementLineDTO `json:"lines"`
}

// StatementLineDTO is one statement row, columns pre-formatted for the
// rendering layer ("-" marks a column that does not apply).
type StatementLineDTO struct {
	Date           string `json:"date"`
	Label          string `json:"label"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	Payment        string `json:"payment"`
	RunningBalance string `json:"running_balance"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEntityDTO(e ledger.Entity) EntityDTO {
	opening, _ := e.OpeningBalance.Float64()
	dto := EntityDTO{
		ID:             string(e.ID),
		Name:           e.Name,
		Email:          e.Email,
		Type:           string(e.Type),
		OpeningBalance: opening,
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func (h *Handler) toDocumentDTO(tx ledger.Transaction, now ledger.TimePoint) DocumentDTO {
	amount, _ := tx.Amount.Float64()
	overdue := ledger.Overdue(tx, now)

	dto := DocumentDTO{
		ID:              string(tx.ID),
		EntityID:        string(tx.EntityID),
		Kind:            string(tx.Kind),
		Date:            tx.Date.String(),
		Number:          tx.Number,
		ReferenceNumber: tx.ReferenceNumber,
		Amount:          amount,
		Status:          string(h.classifier.Classify(tx, now)),
		Overdue:         overdue.Overdue,
		DaysOverdue:     overdue.DaysOverdue,
		AmountDisplay:   format.Currency(tx.Amount),
	}
	if tx.DueDate != nil {
		dto.DueDate = tx.DueDate.String()
	}
	if tx.Balance.Valid {
		balance, _ := tx.Balance.Decimal.Float64()
		dto.Balance = &balance
	}
	return dto
}

func toSummaryDTO(s ledger.AccountSummary, period ledger.Period) SummaryDTO {
	opening, _ := s.OpeningBalance.Float64()
	invoiced, _ := s.InvoicedAmount.Float64()
	received, _ := s.AmountReceived.Float64()
	due, _ := s.BalanceDue.Float64()

	return SummaryDTO{
		EntityID:        string(s.EntityID),
		From:            period.Start.String(),
		To:              period.End.String(),
		OpeningBalance:  opening,
		InvoicedAmount:  invoiced,
		AmountReceived:  received,
		BalanceDue:      due,
		InvoicedDisplay: format.Currency(s.InvoicedAmount),
		ReceivedDisplay: format.Currency(s.AmountReceived),
		DueDisplay:      format.Currency(s.BalanceDue),
	}
}

func toStatementLineDTO(line ledger.StatementLine) StatementLineDTO {
	return StatementLineDTO{
		Date:           format.Date(line.Date),
		Label:          line.Label,
		Kind:           string(line.Kind),
		Amount:         format.CurrencyNull(line.Amount),
		Payment:        format.CurrencyNull(line.Payment),
		RunningBalance: format.Currency(line.RunningBalance),
	}
}

func toStatementLineDTOs(lines []ledger.StatementLine) []StatementLineDTO {
	dtos := make([]StatementLineDTO, len(lines))
	for i, line := range lines {
		dtos[i] = toStatementLineDTO(line)
	}
	return dtos
}

func floatToNullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*f), Valid: true}
}
