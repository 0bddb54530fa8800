// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/billing-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	entities  map[ledger.EntityID]ledger.Entity
	documents map[ledger.TransactionID]memoryDoc
	seq       int
}

// memoryDoc carries the insertion sequence so listings can keep insertion
// order within a date.
type memoryDoc struct {
	tx  ledger.Transaction
	seq int
}

func NewMemory() *Memory {
	return &Memory{
		entities:  make(map[ledger.EntityID]ledger.Entity),
		documents: make(map[ledger.TransactionID]memoryDoc),
	}
}

func (m *Memory) SaveDocument(_ context.Context, tx ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[tx.ID]; ok {
		return ledger.ErrDuplicateID
	}
	if _, ok := m.entities[tx.EntityID]; !ok {
		return ledger.ErrEntityNotFound
	}
	if !ledger.ValidKind(tx.Kind) {
		return ledger.ErrInvalidKind
	}

	m.seq++
	m.documents[tx.ID] = memoryDoc{tx: tx, seq: m.seq}
	return nil
}

func (m *Memory) Document(_ context.Context, id ledger.TransactionID) (ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.documents[id]
	if !ok {
		return ledger.Transaction{}, ledger.ErrDocumentNotFound
	}
	return doc.tx, nil
}

func (m *Memory) DocumentsByEntity(_ context.Context, entityID ledger.EntityID, kind ledger.Kind) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(tx ledger.Transaction) bool {
		return tx.EntityID == entityID && (kind == "" || tx.Kind == kind)
	}), nil
}

func (m *Memory) DocumentsInRange(_ context.Context, entityID ledger.EntityID, period ledger.Period) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(tx ledger.Transaction) bool {
		return tx.EntityID == entityID && period.Contains(tx.Date)
	}), nil
}

// collect returns matching documents ordered by date asc, insertion order
// within a date.
func (m *Memory) collect(match func(ledger.Transaction) bool) []ledger.Transaction {
	var docs []memoryDoc
	for _, doc := range m.documents {
		if match(doc.tx) {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].tx.Date.Equal(docs[j].tx.Date) {
			return docs[i].tx.Date.Before(docs[j].tx.Date)
		}
		return docs[i].seq < docs[j].seq
	})

	result := make([]ledger.Transaction, len(docs))
	for i, doc := range docs {
		result[i] = doc.tx
	}
	return result
}

func (m *Memory) VoidDocument(_ context.Context, id ledger.TransactionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[id]
	if !ok {
		return ledger.ErrDocumentNotFound
	}
	doc.tx.ExplicitStatus = ledger.StatusVoid
	m.documents[id] = doc
	return nil
}

func (m *Memory) SaveEntity(_ context.Context, e ledger.Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entities[e.ID]; ok {
		return ledger.ErrDuplicateID
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.entities[e.ID] = e
	return nil
}

func (m *Memory) Entity(_ context.Context, id ledger.EntityID) (ledger.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[id]
	if !ok {
		return ledger.Entity{}, ledger.ErrEntityNotFound
	}
	return e, nil
}

func (m *Memory) ListEntities(_ context.Context) ([]ledger.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entities := make([]ledger.Entity, 0, len(m.entities))
	for _, e := range m.entities {
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entities = make(map[ledger.EntityID]ledger.Entity)
	m.documents = make(map[ledger.TransactionID]memoryDoc)
	m.seq = 0
	return nil
}

// Compile-time check
var _ ledger.Store = (*Memory)(nil)
