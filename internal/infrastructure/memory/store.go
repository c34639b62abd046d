// Package memory provides map-backed repositories with a snapshotting unit of
// work. It backs the application tests and local runs without a database; the
// rollback behavior mirrors what a real transaction gives the coordinator.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// Store holds every aggregate in memory. One store mutex serializes units of
// work; reads outside a unit of work take the read lock.
type Store struct {
	mu sync.RWMutex

	parties   map[string]domain.Party
	entries   []domain.LedgerEntry
	materials map[string]domain.RawMaterial
	feeds     map[string]domain.FinishedFeed
	eggStock  *domain.EggStock
	packaging *domain.PackagingStock
	formulas  map[string]domain.FeedFormula
	batches   map[string]domain.FeedBatch
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		parties:   make(map[string]domain.Party),
		materials: make(map[string]domain.RawMaterial),
		feeds:     make(map[string]domain.FinishedFeed),
		formulas:  make(map[string]domain.FeedFormula),
		batches:   make(map[string]domain.FeedBatch),
	}
}

type txKey struct{}

type memTx struct {
	ctx context.Context
}

func (t memTx) Context() context.Context { return t.ctx }

func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// UnitOfWork runs units of work against the store: the whole state is
// snapshotted up front and restored verbatim when fn fails, so a failing
// operation leaves no trace.
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a unit of work bound to the store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Execute implements domain.UnitOfWork.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(tx domain.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snap := u.store.snapshot()
	tx := memTx{ctx: context.WithValue(ctx, txKey{}, struct{}{})}
	if err := fn(tx); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	parties   map[string]domain.Party
	entries   []domain.LedgerEntry
	materials map[string]domain.RawMaterial
	feeds     map[string]domain.FinishedFeed
	eggStock  *domain.EggStock
	packaging *domain.PackagingStock
	formulas  map[string]domain.FeedFormula
	batches   map[string]domain.FeedBatch
}

// snapshot deep-copies the store state. Aggregates are value-copied; the only
// reference fields are the ingredient slices, cloned explicitly.
func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		parties:   maps.Clone(s.parties),
		entries:   slices.Clone(s.entries),
		materials: maps.Clone(s.materials),
		feeds:     maps.Clone(s.feeds),
		formulas:  make(map[string]domain.FeedFormula, len(s.formulas)),
		batches:   make(map[string]domain.FeedBatch, len(s.batches)),
	}
	for id, f := range s.formulas {
		f.Ingredients = slices.Clone(f.Ingredients)
		snap.formulas[id] = f
	}
	for id, b := range s.batches {
		b.Ingredients = slices.Clone(b.Ingredients)
		snap.batches[id] = b
	}
	if s.eggStock != nil {
		eggs := *s.eggStock
		snap.eggStock = &eggs
	}
	if s.packaging != nil {
		pack := *s.packaging
		snap.packaging = &pack
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.parties = snap.parties
	s.entries = snap.entries
	s.materials = snap.materials
	s.feeds = snap.feeds
	s.eggStock = snap.eggStock
	s.packaging = snap.packaging
	s.formulas = snap.formulas
	s.batches = snap.batches
}

// lockRead takes the read lock unless the context already belongs to an open
// unit of work, which holds the write lock for its whole duration.
func (s *Store) lockRead(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
