/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Production persistence for entities and documents. The same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  entities:   Customers and vendors
  documents:  Invoices, bills, payments, credit notes

VOIDING:
  Documents are never deleted. VoidDocument rewrites the status flag to
  'void'; the derivation layer makes VOID override everything else, so
  history stays intact for statements.

ORDERING:
  Listing queries order by date ASC then rowid ASC. Rowid preserves
  insertion order within a date, which the statement builder's stable
  sort depends on for deterministic output.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/billing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/billing-engine/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Entities (customers and vendors)
	CREATE TABLE IF NOT EXISTS entities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		entity_type TEXT NOT NULL,
		opening_balance TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Documents (invoices, bills, payments, credit notes)
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL REFERENCES entities(id),
		kind TEXT NOT NULL,
		doc_date TEXT NOT NULL,
		due_date TEXT,
		number TEXT,
		reference_number TEXT,
		amount TEXT NOT NULL,
		balance TEXT,
		status TEXT,
		created_at TEXT NOT NULL
	);

	-- Per-entity listings and period scans (hot path)
	CREATE INDEX IF NOT EXISTS idx_documents_entity_date
		ON documents(entity_id, doc_date);
	CREATE INDEX IF NOT EXISTS idx_documents_entity_kind
		ON documents(entity_id, kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DOCUMENTS
// =============================================================================

func (s *Store) SaveDocument(ctx context.Context, tx ledger.Transaction) error {
	if !ledger.ValidKind(tx.Kind) {
		return ledger.ErrInvalidKind
	}
	if _, err := s.Entity(ctx, tx.EntityID); err != nil {
		return err
	}

	query := `
		INSERT INTO documents
		(id, entity_id, kind, doc_date, due_date, number, reference_number,
		 amount, balance, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.EntityID,
		tx.Kind,
		tx.Date.Time.Format(time.RFC3339),
		nullTime(tx.DueDate),
		nullString(tx.Number),
		nullString(tx.ReferenceNumber),
		tx.Amount.String(),
		nullDecimal(tx.Balance),
		nullString(string(tx.ExplicitStatus)),
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateID
		}
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *Store) Document(ctx context.Context, id ledger.TransactionID) (ledger.Transaction, error) {
	query := selectDocuments + ` WHERE id = ?`

	docs, err := s.queryDocuments(ctx, query, id)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if len(docs) == 0 {
		return ledger.Transaction{}, ledger.ErrDocumentNotFound
	}
	return docs[0], nil
}

func (s *Store) DocumentsByEntity(ctx context.Context, entityID ledger.EntityID, kind ledger.Kind) ([]ledger.Transaction, error) {
	if kind == "" {
		query := selectDocuments + ` WHERE entity_id = ? ORDER BY doc_date ASC, rowid ASC`
		return s.queryDocuments(ctx, query, entityID)
	}
	query := selectDocuments + ` WHERE entity_id = ? AND kind = ? ORDER BY doc_date ASC, rowid ASC`
	return s.queryDocuments(ctx, query, entityID, kind)
}

func (s *Store) DocumentsInRange(ctx context.Context, entityID ledger.EntityID, period ledger.Period) ([]ledger.Transaction, error) {
	query := selectDocuments + `
		WHERE entity_id = ? AND doc_date >= ? AND doc_date <= ?
		ORDER BY doc_date ASC, rowid ASC`

	return s.queryDocuments(ctx, query, entityID,
		period.Start.Time.Format(time.RFC3339),
		period.End.Time.Format(time.RFC3339))
}

func (s *Store) VoidDocument(ctx context.Context, id ledger.TransactionID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET status = ? WHERE id = ?`,
		ledger.StatusVoid, id)
	if err != nil {
		return fmt.Errorf("failed to void document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrDocumentNotFound
	}
	return nil
}

const selectDocuments = `
	SELECT id, entity_id, kind, doc_date, due_date, number, reference_number,
	       amount, balance, status
	FROM documents`

func (s *Store) queryDocuments(ctx context.Context, query string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []ledger.Transaction
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(rows *sql.Rows) (ledger.Transaction, error) {
	var (
		tx        ledger.Transaction
		docDate   string
		dueDate   sql.NullString
		number    sql.NullString
		reference sql.NullString
		amount    string
		balance   sql.NullString
		status    sql.NullString
	)

	err := rows.Scan(
		&tx.ID, &tx.EntityID, &tx.Kind, &docDate, &dueDate,
		&number, &reference, &amount, &balance, &status,
	)
	if err != nil {
		return tx, fmt.Errorf("failed to scan document: %w", err)
	}

	t, _ := time.Parse(time.RFC3339, docDate)
	tx.Date = ledger.TimePoint{Time: t}
	if dueDate.Valid {
		dt, err := time.Parse(time.RFC3339, dueDate.String)
		if err == nil {
			due := ledger.TimePoint{Time: dt}
			tx.DueDate = &due
		}
	}
	tx.Number = number.String
	tx.ReferenceNumber = reference.String
	tx.Amount = parseDecimal(amount)
	if balance.Valid {
		tx.Balance = decimal.NullDecimal{Decimal: parseDecimal(balance.String), Valid: true}
	}
	tx.ExplicitStatus = ledger.Status(status.String)

	return tx, nil
}

// =============================================================================
// ENTITIES
// =============================================================================

func (s *Store) SaveEntity(ctx context.Context, e ledger.Entity) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entities (id, name, email, entity_type, opening_balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Email, e.Type, e.OpeningBalance.String(),
		createdAt.Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateID
		}
		return fmt.Errorf("failed to save entity: %w", err)
	}
	return nil
}

func (s *Store) Entity(ctx context.Context, id ledger.EntityID) (ledger.Entity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, entity_type, opening_balance, created_at
		FROM entities WHERE id = ?`, id)

	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return ledger.Entity{}, ledger.ErrEntityNotFound
	}
	return e, err
}

func (s *Store) ListEntities(ctx context.Context) ([]ledger.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, entity_type, opening_balance, created_at
		FROM entities ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []ledger.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents; DELETE FROM entities;`)
	return err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEntity(row scannable) (ledger.Entity, error) {
	var (
		e         ledger.Entity
		email     sql.NullString
		opening   string
		createdAt string
	)

	err := row.Scan(&e.ID, &e.Name, &email, &e.Type, &opening, &createdAt)
	if err != nil {
		return e, err
	}

	e.Email = email.String
	e.OpeningBalance = parseDecimal(opening)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(tp *ledger.TimePoint) sql.NullString {
	if tp == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: tp.Time.Format(time.RFC3339), Valid: true}
}

func nullDecimal(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Compile-time check
var _ ledger.Store = (*Store)(nil)
