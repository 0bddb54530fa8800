/*
store.go - Records store interface

PURPOSE:
  Defines the boundary between the derivation layer and persistence.
  The derivation functions never touch storage; handlers fetch records
  through this interface and feed them to the pure functions.

IMPLEMENTATIONS:
  - ledger/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: Production SQLite

VOIDING:
  Documents are never hard-deleted. Voiding rewrites the explicit status
  flag to "void"; the classifier then makes VOID override every derived
  status. History stays intact for statements and audits.
*/
package ledger

import "context"

// =============================================================================
// STORE - Records persistence
// =============================================================================

// Store persists entities and their documents. Listing operations return
// documents ordered by date ascending with insertion order preserved
// within a date, which is the ordering the statement builder's stable
// sort relies on.
type Store interface {
	// SaveDocument persists a document. Fails with ErrDuplicateID if the
	// ID exists, ErrEntityNotFound if the entity doesn't.
	SaveDocument(ctx context.Context, tx Transaction) error

	// Document returns one document, or ErrDocumentNotFound.
	Document(ctx context.Context, id TransactionID) (Transaction, error)

	// DocumentsByEntity returns an entity's documents of one kind.
	// kind == "" returns all kinds.
	DocumentsByEntity(ctx context.Context, entityID EntityID, kind Kind) ([]Transaction, error)

	// DocumentsInRange returns an entity's documents dated within the
	// period, all kinds.
	DocumentsInRange(ctx context.Context, entityID EntityID, period Period) ([]Transaction, error)

	// VoidDocument marks a document void. Not a delete.
	VoidDocument(ctx context.Context, id TransactionID) error

	// SaveEntity persists an entity. Fails with ErrDuplicateID if the ID exists.
	SaveEntity(ctx context.Context, e Entity) error

	// Entity returns one entity, or ErrEntityNotFound.
	Entity(ctx context.Context, id EntityID) (Entity, error)

	// ListEntities returns all entities.
	ListEntities(ctx context.Context) ([]Entity, error)

	// Reset clears all records. Dev/scenario use only.
	Reset(ctx context.Context) error
}
