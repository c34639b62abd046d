package domain

import (
	"context"
)

// Tx is the handle proving an open unit of work. Every repository write takes
// one, so a ledger posting or stock mutation outside a unit of work does not
// compile. Tx.Context carries the transactional context the infrastructure
// needs to scope its writes.
type Tx interface {
	Context() context.Context
}

// UnitOfWork is the atomic boundary of one business operation. Execute runs
// fn inside a single transaction: every write made through the Tx commits
// together when fn returns nil, and everything rolls back when it returns an
// error. There is no per-step compensation anywhere else.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx Tx) error) error
}

// PartyRepository persists parties.
type PartyRepository interface {
	Save(tx Tx, party *Party) error
	Delete(tx Tx, partyID string) error
	FindByID(ctx context.Context, partyID string) (*Party, error)
	FindAll(ctx context.Context) ([]*Party, error)
}

// LedgerEntryRepository is append-only: entries are never updated or deleted,
// only added. Callers append exactly once per business event; there is no
// dedup key at this layer.
type LedgerEntryRepository interface {
	Append(tx Tx, entry LedgerEntry) error
	FindByParty(ctx context.Context, partyID string) ([]LedgerEntry, error)
	FindByID(ctx context.Context, entryID string) (*LedgerEntry, error)
	FindByTransactionID(ctx context.Context, transactionID string) ([]LedgerEntry, error)
	CountByParty(ctx context.Context, partyID string) (int64, error)
}

// RawMaterialRepository persists raw materials.
type RawMaterialRepository interface {
	Save(tx Tx, material *RawMaterial) error
	FindByID(ctx context.Context, materialID string) (*RawMaterial, error)
	FindAll(ctx context.Context) ([]*RawMaterial, error)
}

// FinishedFeedRepository persists finished feed stock.
type FinishedFeedRepository interface {
	Save(tx Tx, feed *FinishedFeed) error
	FindByID(ctx context.Context, feedID string) (*FinishedFeed, error)
	FindAll(ctx context.Context) ([]*FinishedFeed, error)
}

// EggStockRepository persists the graded egg stock aggregate.
type EggStockRepository interface {
	Save(tx Tx, stock *EggStock) error
	Find(ctx context.Context) (*EggStock, error)
}

// PackagingStockRepository persists the packaging stock aggregate.
type PackagingStockRepository interface {
	Save(tx Tx, stock *PackagingStock) error
	Find(ctx context.Context) (*PackagingStock, error)
}

// FormulaRepository persists feed formulas.
type FormulaRepository interface {
	Save(tx Tx, formula *FeedFormula) error
	FindByID(ctx context.Context, formulaID string) (*FeedFormula, error)
	FindAll(ctx context.Context) ([]*FeedFormula, error)
}

// FeedBatchRepository persists immutable production batches.
type FeedBatchRepository interface {
	Save(tx Tx, batch *FeedBatch) error
	FindByID(ctx context.Context, batchID string) (*FeedBatch, error)
	FindByFormula(ctx context.Context, formulaID string, limit int) ([]*FeedBatch, error)
}
