package memory

import (
	"context"
	"slices"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// PartyRepository is the in-memory domain.PartyRepository.
type PartyRepository struct{ store *Store }

func NewPartyRepository(store *Store) *PartyRepository {
	return &PartyRepository{store: store}
}

func (r *PartyRepository) Save(tx domain.Tx, party *domain.Party) error {
	r.store.parties[party.PartyID] = *party
	return nil
}

func (r *PartyRepository) Delete(tx domain.Tx, partyID string) error {
	delete(r.store.parties, partyID)
	return nil
}

func (r *PartyRepository) FindByID(ctx context.Context, partyID string) (*domain.Party, error) {
	defer r.store.lockRead(ctx)()
	party, ok := r.store.parties[partyID]
	if !ok {
		return nil, nil
	}
	return &party, nil
}

func (r *PartyRepository) FindAll(ctx context.Context) ([]*domain.Party, error) {
	defer r.store.lockRead(ctx)()
	parties := make([]*domain.Party, 0, len(r.store.parties))
	for _, p := range r.store.parties {
		party := p
		parties = append(parties, &party)
	}
	slices.SortFunc(parties, func(a, b *domain.Party) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return parties, nil
}

// LedgerEntryRepository is the in-memory append-only entry log.
type LedgerEntryRepository struct{ store *Store }

func NewLedgerEntryRepository(store *Store) *LedgerEntryRepository {
	return &LedgerEntryRepository{store: store}
}

func (r *LedgerEntryRepository) Append(tx domain.Tx, entry domain.LedgerEntry) error {
	r.store.entries = append(r.store.entries, entry)
	return nil
}

func (r *LedgerEntryRepository) FindByParty(ctx context.Context, partyID string) ([]domain.LedgerEntry, error) {
	defer r.store.lockRead(ctx)()
	var entries []domain.LedgerEntry
	for _, e := range r.store.entries {
		if e.PartyID == partyID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *LedgerEntryRepository) FindByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	defer r.store.lockRead(ctx)()
	for _, e := range r.store.entries {
		if e.EntryID.String() == entryID {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

func (r *LedgerEntryRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	defer r.store.lockRead(ctx)()
	var entries []domain.LedgerEntry
	for _, e := range r.store.entries {
		if e.TransactionID.String() == transactionID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *LedgerEntryRepository) CountByParty(ctx context.Context, partyID string) (int64, error) {
	defer r.store.lockRead(ctx)()
	var count int64
	for _, e := range r.store.entries {
		if e.PartyID == partyID {
			count++
		}
	}
	return count, nil
}

// RawMaterialRepository is the in-memory domain.RawMaterialRepository.
type RawMaterialRepository struct{ store *Store }

func NewRawMaterialRepository(store *Store) *RawMaterialRepository {
	return &RawMaterialRepository{store: store}
}

func (r *RawMaterialRepository) Save(tx domain.Tx, material *domain.RawMaterial) error {
	r.store.materials[material.MaterialID] = *material
	return nil
}

func (r *RawMaterialRepository) FindByID(ctx context.Context, materialID string) (*domain.RawMaterial, error) {
	defer r.store.lockRead(ctx)()
	material, ok := r.store.materials[materialID]
	if !ok {
		return nil, nil
	}
	return &material, nil
}

func (r *RawMaterialRepository) FindAll(ctx context.Context) ([]*domain.RawMaterial, error) {
	defer r.store.lockRead(ctx)()
	materials := make([]*domain.RawMaterial, 0, len(r.store.materials))
	for _, m := range r.store.materials {
		material := m
		materials = append(materials, &material)
	}
	return materials, nil
}

// FinishedFeedRepository is the in-memory domain.FinishedFeedRepository.
type FinishedFeedRepository struct{ store *Store }

func NewFinishedFeedRepository(store *Store) *FinishedFeedRepository {
	return &FinishedFeedRepository{store: store}
}

func (r *FinishedFeedRepository) Save(tx domain.Tx, feed *domain.FinishedFeed) error {
	r.store.feeds[feed.FeedID] = *feed
	return nil
}

func (r *FinishedFeedRepository) FindByID(ctx context.Context, feedID string) (*domain.FinishedFeed, error) {
	defer r.store.lockRead(ctx)()
	feed, ok := r.store.feeds[feedID]
	if !ok {
		return nil, nil
	}
	return &feed, nil
}

func (r *FinishedFeedRepository) FindAll(ctx context.Context) ([]*domain.FinishedFeed, error) {
	defer r.store.lockRead(ctx)()
	feeds := make([]*domain.FinishedFeed, 0, len(r.store.feeds))
	for _, f := range r.store.feeds {
		feed := f
		feeds = append(feeds, &feed)
	}
	return feeds, nil
}

// EggStockRepository is the in-memory domain.EggStockRepository.
type EggStockRepository struct{ store *Store }

func NewEggStockRepository(store *Store) *EggStockRepository {
	return &EggStockRepository{store: store}
}

func (r *EggStockRepository) Save(tx domain.Tx, stock *domain.EggStock) error {
	copied := *stock
	r.store.eggStock = &copied
	return nil
}

func (r *EggStockRepository) Find(ctx context.Context) (*domain.EggStock, error) {
	defer r.store.lockRead(ctx)()
	if r.store.eggStock == nil {
		return nil, nil
	}
	stock := *r.store.eggStock
	return &stock, nil
}

// PackagingStockRepository is the in-memory domain.PackagingStockRepository.
type PackagingStockRepository struct{ store *Store }

func NewPackagingStockRepository(store *Store) *PackagingStockRepository {
	return &PackagingStockRepository{store: store}
}

func (r *PackagingStockRepository) Save(tx domain.Tx, stock *domain.PackagingStock) error {
	copied := *stock
	r.store.packaging = &copied
	return nil
}

func (r *PackagingStockRepository) Find(ctx context.Context) (*domain.PackagingStock, error) {
	defer r.store.lockRead(ctx)()
	if r.store.packaging == nil {
		return nil, nil
	}
	stock := *r.store.packaging
	return &stock, nil
}

// FormulaRepository is the in-memory domain.FormulaRepository.
type FormulaRepository struct{ store *Store }

func NewFormulaRepository(store *Store) *FormulaRepository {
	return &FormulaRepository{store: store}
}

func (r *FormulaRepository) Save(tx domain.Tx, formula *domain.FeedFormula) error {
	copied := *formula
	copied.Ingredients = slices.Clone(formula.Ingredients)
	r.store.formulas[formula.FormulaID] = copied
	return nil
}

func (r *FormulaRepository) FindByID(ctx context.Context, formulaID string) (*domain.FeedFormula, error) {
	defer r.store.lockRead(ctx)()
	formula, ok := r.store.formulas[formulaID]
	if !ok {
		return nil, nil
	}
	formula.Ingredients = slices.Clone(formula.Ingredients)
	return &formula, nil
}

func (r *FormulaRepository) FindAll(ctx context.Context) ([]*domain.FeedFormula, error) {
	defer r.store.lockRead(ctx)()
	formulas := make([]*domain.FeedFormula, 0, len(r.store.formulas))
	for _, f := range r.store.formulas {
		formula := f
		formula.Ingredients = slices.Clone(f.Ingredients)
		formulas = append(formulas, &formula)
	}
	return formulas, nil
}

// FeedBatchRepository is the in-memory domain.FeedBatchRepository.
type FeedBatchRepository struct{ store *Store }

func NewFeedBatchRepository(store *Store) *FeedBatchRepository {
	return &FeedBatchRepository{store: store}
}

func (r *FeedBatchRepository) Save(tx domain.Tx, batch *domain.FeedBatch) error {
	copied := *batch
	copied.Ingredients = slices.Clone(batch.Ingredients)
	r.store.batches[batch.BatchID] = copied
	return nil
}

func (r *FeedBatchRepository) FindByID(ctx context.Context, batchID string) (*domain.FeedBatch, error) {
	defer r.store.lockRead(ctx)()
	batch, ok := r.store.batches[batchID]
	if !ok {
		return nil, nil
	}
	batch.Ingredients = slices.Clone(batch.Ingredients)
	return &batch, nil
}

func (r *FeedBatchRepository) FindByFormula(ctx context.Context, formulaID string, limit int) ([]*domain.FeedBatch, error) {
	defer r.store.lockRead(ctx)()
	var batches []*domain.FeedBatch
	for _, b := range r.store.batches {
		if b.FormulaID != formulaID {
			continue
		}
		batch := b
		batch.Ingredients = slices.Clone(b.Ingredients)
		batches = append(batches, &batch)
	}
	slices.SortFunc(batches, func(a, b *domain.FeedBatch) int {
		return b.ProducedAt.Compare(a.ProducedAt)
	})
	if limit > 0 && len(batches) > limit {
		batches = batches[:limit]
	}
	return batches, nil
}
