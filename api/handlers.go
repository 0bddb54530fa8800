/*
handlers.go - HTTP API handlers for the billing derivation engine

PURPOSE:
  Exposes the records store and the derivation layer via REST. Handles
  HTTP request/response, JSON serialization, and delegates every
  computation to the pure functions in the ledger package.

ENDPOINTS:
  Entities:
    GET    /api/entities                  List customers and vendors
    POST   /api/entities                  Create entity
    GET    /api/entities/{id}             Get entity
    GET    /api/entities/{id}/summary     Period account summary
    GET    /api/entities/{id}/statement   Period statement ledger
    GET    /api/entities/{id}/documents   List documents (optional ?kind=)

  Documents:
    POST   /api/documents                 Record a document
    GET    /api/documents/{id}            Get document with derived status
    DELETE /api/documents/{id}            Void (never hard-delete)

  Scenarios:
    GET    /api/scenarios                 List demo scenarios
    POST   /api/scenarios/load            Load a demo scenario
    POST   /api/scenarios/reset           Clear all records

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input at the boundary (kinds, dates, periods)
  3. Fetch records, run the pure derivation
  4. Serialize response

FAN-OUT:
  The summary fetches the four document kinds concurrently and joins
  before aggregation. No ordering is needed between the fetches beyond
  "all must resolve before computing". The statement instead pulls one
  period-scoped range query, since its rows are already period-bounded.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Entity or document not found
  - 409: Duplicate ID
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo data loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/warp/billing-engine/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store ledger.Store
	Log   zerolog.Logger

	classifier ledger.Classifier

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store. The classifier's
// warning hook logs every defaulting of malformed upstream data.
func NewHandler(store ledger.Store, log zerolog.Logger) *Handler {
	h := &Handler{Store: store, Log: log}
	h.classifier = ledger.Classifier{
		Warn: func(id ledger.TransactionID, field, note string) {
			log.Warn().
				Str("document", string(id)).
				Str("field", field).
				Msg(note)
		},
	}
	return h
}

// =============================================================================
// ENTITY HANDLERS
// =============================================================================

// ListEntities returns all customers and vendors.
func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := h.Store.ListEntities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entities", err)
		return
	}

	dtos := make([]EntityDTO, len(entities))
	for i, e := range entities {
		dtos[i] = toEntityDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEntity returns a single entity.
func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	id := ledger.EntityID(chi.URLParam(r, "id"))

	e, err := h.Store.Entity(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get entity", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntityDTO(e))
}

// CreateEntity creates a customer or vendor.
func (h *Handler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req CreateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	entityType := ledger.EntityType(req.Type)
	if entityType == "" {
		entityType = ledger.EntityCustomer
	}
	if entityType != ledger.EntityCustomer && entityType != ledger.EntityVendor {
		writeError(w, http.StatusBadRequest, "type must be customer or vendor", nil)
		return
	}

	e := ledger.Entity{
		ID:             ledger.EntityID(req.ID),
		Name:           req.Name,
		Email:          req.Email,
		Type:           entityType,
		OpeningBalance: decimal.NewFromFloat(req.OpeningBalance),
	}
	if err := h.Store.SaveEntity(r.Context(), e); err != nil {
		writeStoreError(w, "Failed to create entity", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntityDTO(e))
}

// =============================================================================
// DOCUMENT HANDLERS
// =============================================================================

// ListDocuments returns an entity's documents, optionally filtered by kind.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	entityID := ledger.EntityID(chi.URLParam(r, "id"))
	kind := ledger.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !ledger.ValidKind(kind) {
		writeError(w, http.StatusBadRequest, "unknown document kind", nil)
		return
	}

	if _, err := h.Store.Entity(r.Context(), entityID); err != nil {
		writeStoreError(w, "Failed to get entity", err)
		return
	}

	docs, err := h.Store.DocumentsByEntity(r.Context(), entityID, kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}

	now := ledger.Now()
	dtos := make([]DocumentDTO, len(docs))
	for i, doc := range docs {
		dtos[i] = h.toDocumentDTO(doc, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDocument returns one document with its derived status.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := ledger.TransactionID(chi.URLParam(r, "id"))

	doc, err := h.Store.Document(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get document", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDocumentDTO(doc, ledger.Now()))
}

// CreateDocument records an invoice, bill, payment, or credit note.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.parseDocument(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document", err)
		return
	}

	if err := h.Store.SaveDocument(r.Context(), tx); err != nil {
		writeStoreError(w, "Failed to save document", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toDocumentDTO(tx, ledger.Now()))
}

// VoidDocument marks a document void. DELETE maps to void: records are
// never removed, statements keep their history.
func (h *Handler) VoidDocument(w http.ResponseWriter, r *http.Request) {
	id := ledger.TransactionID(chi.URLParam(r, "id"))

	if err := h.Store.VoidDocument(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to void document", err)
		return
	}

	doc, err := h.Store.Document(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to reload document", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDocumentDTO(doc, ledger.Now()))
}

func (h *Handler) parseDocument(req CreateDocumentRequest) (ledger.Transaction, error) {
	id := ledger.TransactionID(req.ID)
	if id == "" {
		id = ledger.TransactionID(uuid.NewString())
	}

	kind := ledger.Kind(req.Kind)
	if !ledger.ValidKind(kind) {
		return ledger.Transaction{}, &ledger.InvalidDocumentError{ID: id, Field: "kind", Cause: ledger.ErrInvalidKind}
	}

	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		return ledger.Transaction{}, &ledger.InvalidDocumentError{ID: id, Field: "date", Cause: err}
	}

	tx := ledger.Transaction{
		ID:              id,
		EntityID:        ledger.EntityID(req.EntityID),
		Kind:            kind,
		Date:            date,
		Number:          req.Number,
		ReferenceNumber: req.ReferenceNumber,
		Amount:          decimal.NewFromFloat(req.Amount),
		Balance:         floatToNullDecimal(req.Balance),
		ExplicitStatus:  ledger.Status(req.Status),
	}

	if req.DueDate != "" {
		due, err := ledger.ParseDate(req.DueDate)
		if err != nil {
			return ledger.Transaction{}, &ledger.InvalidDocumentError{ID: id, Field: "due_date", Cause: err}
		}
		tx.DueDate = &due
	}
	return tx, nil
}

// =============================================================================
// SUMMARY AND STATEMENT HANDLERS
// =============================================================================

// GetSummary computes the period account summary for an entity.
// The four document kinds are fetched concurrently and joined before
// aggregation.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	entityID := ledger.EntityID(chi.URLParam(r, "id"))
	ctx := r.Context()

	entity, err := h.Store.Entity(ctx, entityID)
	if err != nil {
		writeStoreError(w, "Failed to get entity", err)
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	txs, err := h.fetchAllKinds(ctx, entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load documents", err)
		return
	}

	var scoped []ledger.Transaction
	for _, tx := range txs {
		if period.Contains(tx.Date) {
			scoped = append(scoped, tx)
		}
	}

	summary := ledger.Aggregate(entityID, scoped, entity.OpeningBalance)
	writeJSON(w, http.StatusOK, toSummaryDTO(summary, period))
}

// GetStatement builds the period statement ledger for an entity.
// Unlike the summary, the statement only needs documents dated inside
// the period, so it uses the store's range query directly.
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	entityID := ledger.EntityID(chi.URLParam(r, "id"))
	ctx := r.Context()

	entity, err := h.Store.Entity(ctx, entityID)
	if err != nil {
		writeStoreError(w, "Failed to get entity", err)
		return
	}

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	txs, err := h.Store.DocumentsInRange(ctx, entityID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load documents", err)
		return
	}

	lines := ledger.BuildStatement(txs, period)
	writeJSON(w, http.StatusOK, StatementDTO{
		EntityID:   string(entityID),
		EntityName: entity.Name,
		From:       period.Start.String(),
		To:         period.End.String(),
		Lines:      toStatementLineDTOs(lines),
	})
}

// fetchAllKinds fans out one fetch per document kind and joins the
// results in kind order, preserving the store's per-kind ordering.
func (h *Handler) fetchAllKinds(ctx context.Context, entityID ledger.EntityID) ([]ledger.Transaction, error) {
	kinds := ledger.Kinds()
	byKind := make([][]ledger.Transaction, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			docs, err := h.Store.DocumentsByEntity(gctx, entityID, kind)
			if err != nil {
				return err
			}
			byKind[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []ledger.Transaction
	for _, docs := range byKind {
		all = append(all, docs...)
	}
	return all, nil
}

// parsePeriod reads ?from=&to= (YYYY-MM-DD). Defaults to the current
// calendar year when absent.
func parsePeriod(r *http.Request) (ledger.Period, error) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	now := ledger.Now()
	start := ledger.NewTimePoint(now.Time.Year(), 1, 1)
	end := ledger.NewTimePoint(now.Time.Year(), 12, 31)

	var err error
	if fromStr != "" {
		if start, err = ledger.ParseDate(fromStr); err != nil {
			return ledger.Period{}, err
		}
	}
	if toStr != "" {
		if end, err = ledger.ParseDate(toStr); err != nil {
			return ledger.Period{}, err
		}
	}
	return ledger.NewPeriod(start, end)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case ledger.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, ledger.ErrDuplicateID):
		writeError(w, http.StatusConflict, message, err)
	case ledger.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
